package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type setRoyaltyRequest struct {
	Caller      string `json:"caller"`
	Receiver    string `json:"receiver"`
	BasisPoints uint16 `json:"basisPoints"`
}

func (r setRoyaltyRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.Receiver == "" {
		errList = append(errList, errors.New("'receiver' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type setRoyaltyResponse = HttpResponse[getRoyaltyResult]

func (h *HttpHandler) SetRoyalty(ctx *fiber.Ctx) (err error) {
	var req setRoyaltyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.service.SetRoyaltyInfo(ctx.UserContext(), req.Receiver, req.BasisPoints, req.Caller); err != nil {
		return errors.Wrap(err, "error during SetRoyaltyInfo")
	}

	config := h.service.Engine().RoyaltyConfig()
	resp := setRoyaltyResponse{
		Result: &getRoyaltyResult{
			Receiver:    config.Receiver,
			BasisPoints: config.BasisPoints,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
