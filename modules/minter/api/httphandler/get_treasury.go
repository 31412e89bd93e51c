package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type getTreasuryResult struct {
	BalanceWei uint128.Uint128 `json:"balanceWei"`
}

type getTreasuryResponse = HttpResponse[getTreasuryResult]

func (h *HttpHandler) GetTreasury(ctx *fiber.Ctx) (err error) {
	resp := getTreasuryResponse{
		Result: &getTreasuryResult{
			BalanceWei: h.service.Engine().TreasuryBalance(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
