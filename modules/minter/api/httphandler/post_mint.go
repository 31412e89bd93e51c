package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type mintRequest struct {
	Buyer      string `json:"buyer"`
	Caller     string `json:"caller"`
	PaymentWei string `json:"paymentWei"`
}

func (r mintRequest) Validate() error {
	var errList []error
	if r.Buyer == "" {
		errList = append(errList, errors.New("'buyer' is required"))
	}
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if _, err := parseWei("paymentWei", r.PaymentWei); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type mintResponse = HttpResponse[getTokenResult]

func (h *HttpHandler) Mint(ctx *fiber.Ctx) (err error) {
	var req mintRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	payment, err := parseWei("paymentWei", req.PaymentWei)
	if err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}

	token, err := h.service.Mint(ctx.UserContext(), req.Buyer, req.Caller, payment)
	if err != nil {
		return errors.Wrap(err, "error during Mint")
	}

	resp := mintResponse{
		Result: &getTokenResult{
			Id:       token.ID,
			Owner:    token.Owner,
			MintedAt: token.MintedAt.UTC(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
