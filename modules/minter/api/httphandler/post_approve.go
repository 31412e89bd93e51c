package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type approveRequest struct {
	Caller  string `json:"caller"`
	Spender string `json:"spender"`
	TokenId uint64 `json:"tokenId"`
}

func (r approveRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type approveResponse = HttpResponse[getTokenResult]

func (h *HttpHandler) Approve(ctx *fiber.Ctx) (err error) {
	var req approveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.service.Approve(ctx.UserContext(), req.Spender, req.TokenId, req.Caller); err != nil {
		return errors.Wrap(err, "error during Approve")
	}

	token, err := h.service.Engine().Token(req.TokenId)
	if err != nil {
		return errors.Wrap(err, "error during Token")
	}
	resp := approveResponse{
		Result: &getTokenResult{
			Id:       token.ID,
			Owner:    token.Owner,
			Approved: token.Approved,
			MintedAt: token.MintedAt.UTC(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
