package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getSupplyResult struct {
	Owner         string `json:"owner"`
	Initialized   bool   `json:"initialized"`
	TotalSupply   uint64 `json:"totalSupply"`
	TotalMinted   uint64 `json:"totalMinted"`
	Unminted      uint64 `json:"unminted"`
	TokensPerDrop uint64 `json:"tokensPerDrop"`
}

type getSupplyResponse = HttpResponse[getSupplyResult]

func (h *HttpHandler) GetSupply(ctx *fiber.Ctx) (err error) {
	engine := h.service.Engine()

	resp := getSupplyResponse{
		Result: &getSupplyResult{
			Owner:         engine.Owner(),
			Initialized:   engine.Initialized(),
			TotalSupply:   engine.TotalSupply(),
			TotalMinted:   engine.TotalMinted(),
			Unminted:      engine.Unminted(),
			TokensPerDrop: engine.TokensPerDrop(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
