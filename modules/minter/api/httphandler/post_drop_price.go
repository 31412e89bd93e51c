package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/common/errs"
)

type setDropPriceRequest struct {
	Index    int    `params:"index"`
	Caller   string `json:"caller"`
	PriceWei string `json:"priceWei"`
}

func (r setDropPriceRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if _, err := parseWei("priceWei", r.PriceWei); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type setDropPriceResponse = HttpResponse[dropResult]

func (h *HttpHandler) SetDropPrice(ctx *fiber.Ctx) (err error) {
	var req setDropPriceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid drop index")
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	price, err := parseWei("priceWei", req.PriceWei)
	if err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}

	drop, err := h.service.SetDropPrice(ctx.UserContext(), req.Index, price, req.Caller)
	if err != nil {
		return errors.Wrap(err, "error during SetDropPrice")
	}

	resp := setDropPriceResponse{Result: lo.ToPtr(newDropResult(drop))}
	return errors.WithStack(ctx.JSON(resp))
}
