package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type getTokenRequest struct {
	Id uint64 `params:"id"`
}

type getTokenResult struct {
	Id       uint64    `json:"id"`
	Owner    string    `json:"owner"`
	Approved string    `json:"approved,omitempty"`
	MintedAt time.Time `json:"mintedAt"`
}

type getTokenResponse = HttpResponse[getTokenResult]

func (h *HttpHandler) GetToken(ctx *fiber.Ctx) (err error) {
	var req getTokenRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid token id")
	}

	token, err := h.service.Engine().Token(req.Id)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errs.NewPublicError("token not found")
		}
		return errors.Wrap(err, "error during Token")
	}

	resp := getTokenResponse{
		Result: &getTokenResult{
			Id:       token.ID,
			Owner:    token.Owner,
			Approved: token.Approved,
			MintedAt: token.MintedAt.UTC(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
