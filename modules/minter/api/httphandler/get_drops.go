package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/wrightcode/ladybugs/modules/minter/internal/entity"
)

type dropResult struct {
	Index     int             `json:"index"`
	PriceWei  uint128.Uint128 `json:"priceWei"`
	StartDate *time.Time      `json:"startDate"`
	PriceDate *time.Time      `json:"priceDate"`
	Allocated uint64          `json:"allocated"`
	Minted    uint64          `json:"minted"`
	SoldOut   bool            `json:"soldOut"`
}

func newDropResult(drop entity.Drop) dropResult {
	result := dropResult{
		Index:     drop.Index,
		PriceWei:  drop.PriceWei,
		Allocated: drop.Allocated,
		Minted:    drop.Minted,
		SoldOut:   drop.SoldOut(),
	}
	if !drop.StartDate.IsZero() {
		result.StartDate = lo.ToPtr(drop.StartDate.UTC())
	}
	if !drop.PriceDate.IsZero() {
		result.PriceDate = lo.ToPtr(drop.PriceDate.UTC())
	}
	return result
}

type getDropsResult struct {
	List []dropResult `json:"list"`
}

type getDropsResponse = HttpResponse[getDropsResult]

func (h *HttpHandler) GetDrops(ctx *fiber.Ctx) (err error) {
	drops := h.service.Engine().Drops()

	resp := getDropsResponse{
		Result: &getDropsResult{
			List: lo.Map(drops, func(drop entity.Drop, _ int) dropResult {
				return newDropResult(drop)
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
