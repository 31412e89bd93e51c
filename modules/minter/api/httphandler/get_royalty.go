package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type getRoyaltyRequest struct {
	TokenId   uint64 `query:"tokenId"`
	SalePrice string `query:"salePrice"`
}

type getRoyaltyResult struct {
	Receiver    string           `json:"receiver"`
	BasisPoints uint16           `json:"basisPoints"`
	RoyaltyWei  *uint128.Uint128 `json:"royaltyWei,omitempty"`
}

type getRoyaltyResponse = HttpResponse[getRoyaltyResult]

// GetRoyalty returns the advertised royalty config. When salePrice is given,
// the computed royalty amount for that sale is included.
func (h *HttpHandler) GetRoyalty(ctx *fiber.Ctx) (err error) {
	var req getRoyaltyRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}

	engine := h.service.Engine()
	config := engine.RoyaltyConfig()
	result := getRoyaltyResult{
		Receiver:    config.Receiver,
		BasisPoints: config.BasisPoints,
	}
	if req.SalePrice != "" {
		salePrice, err := parseWei("salePrice", req.SalePrice)
		if err != nil {
			return errs.WithPublicMessage(err, "validation error")
		}
		_, royalty := engine.RoyaltyInfo(req.TokenId, salePrice)
		result.RoyaltyWei = &royalty
	}

	resp := getRoyaltyResponse{Result: &result}
	return errors.WithStack(ctx.JSON(resp))
}
