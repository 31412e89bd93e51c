package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

type remediateRequest struct {
	Caller string `json:"caller"`
}

func (r remediateRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type remediateResult struct {
	Minted []getTokenResult `json:"minted"`
}

type remediateResponse = HttpResponse[remediateResult]

// Remediate force-completes a stalled drop by minting its remainder to the
// collection owner.
func (h *HttpHandler) Remediate(ctx *fiber.Ctx) (err error) {
	var req remediateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	minted, err := h.service.MintStalledDropToOwner(ctx.UserContext(), req.Caller)
	if err != nil {
		return errors.Wrap(err, "error during MintStalledDropToOwner")
	}

	resp := remediateResponse{
		Result: &remediateResult{
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
