package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/common/errs"
)

type updateDropRequest struct {
	Index     int       `params:"index"`
	Caller    string    `json:"caller"`
	PriceWei  string    `json:"priceWei"`
	StartDate time.Time `json:"startDate"`
}

func (r updateDropRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if _, err := parseWei("priceWei", r.PriceWei); err != nil {
		errList = append(errList, err)
	}
	if r.StartDate.IsZero() {
		errList = append(errList, errors.New("'startDate' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type updateDropResponse = HttpResponse[dropResult]

func (h *HttpHandler) UpdateDrop(ctx *fiber.Ctx) (err error) {
	var req updateDropRequest
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

	drop, err := h.service.UpdateDrop(ctx.UserContext(), req.Index, price, req.StartDate, req.Caller)
	if err != nil {
		return errors.Wrap(err, "error during UpdateDrop")
	}

	resp := updateDropResponse{Result: lo.ToPtr(newDropResult(drop))}
	return errors.WithStack(ctx.JSON(resp))
}
