package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

type initializeRequest struct {
	Caller string `json:"caller"`
}

func (r initializeRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type initializeResult struct {
	Minted []getTokenResult `json:"minted"`
}

type initializeResponse = HttpResponse[initializeResult]

func (h *HttpHandler) Initialize(ctx *fiber.Ctx) (err error) {
	var req initializeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	minted, err := h.service.Initialize(ctx.UserContext(), req.Caller)
	if err != nil {
		return errors.Wrap(err, "error during Initialize")
	}

	resp := initializeResponse{
		Result: &initializeResult{
			Minted: lo.Map(minted, func(token entity.Token, _ int) getTokenResult {
				return getTokenResult{
					Id:       token.ID,
					Owner:    token.Owner,
					MintedAt: token.MintedAt.UTC(),
				}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
