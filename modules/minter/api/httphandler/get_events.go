package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

const getEventsMaxLimit = 1000

type getEventsRequest struct {
	paginationRequest
}

func (r getEventsRequest) Validate() error {
	var errList []error
	if err := r.paginationRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if r.Limit > getEventsMaxLimit {
		errList = append(errList, errors.Errorf("'limit' cannot exceed %d", getEventsMaxLimit))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type eventResult struct {
	Sequence   int64            `json:"sequence"`
	Type       string           `json:"type"`
	Actor      string           `json:"actor"`
	TokenId    *uint64          `json:"tokenId,omitempty"`
	DropIndex  *int             `json:"dropIndex,omitempty"`
	AmountWei  *uint128.Uint128 `json:"amountWei,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

type getEventsResult struct {
	List []eventResult `json:"list"`
}

type getEventsResponse = HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	if err := req.ParseDefault(); err != nil {
		return errors.WithStack(err)
	}

	events, err := h.service.Events(ctx.UserContext(), req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during Events")
	}

	resp := getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(events, func(event entity.MinterEvent, _ int) eventResult {
				return eventResult{
					Sequence:   event.Sequence,
					Type:       string(event.Type),
					Actor:      event.Actor,
					TokenId:    event.TokenID,
					DropIndex:  event.DropIndex,
					AmountWei:  event.AmountWei,
					OccurredAt: event.OccurredAt.UTC(),
				}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
