package httphandler

import (
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type getHolderRequest struct {
	Address string `params:"address"`
}

func (r *getHolderRequest) Validate() error {
	address, err := url.QueryUnescape(r.Address)
	if err != nil {
		return errors.WithStack(err)
	}
	r.Address = address
	if r.Address == "" {
		return errs.WithPublicMessage(errors.New("'address' is required"), "validation error")
	}
	return nil
}

type getHolderResult struct {
	Address  string   `json:"address"`
	Balance  uint64   `json:"balance"`
	TokenIds []uint64 `json:"tokenIds"`
}

type getHolderResponse = HttpResponse[getHolderResult]

func (h *HttpHandler) GetHolder(ctx *fiber.Ctx) (err error) {
	var req getHolderRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	engine := h.service.Engine()
	tokenIds := engine.TokenIDsOf(req.Address)

	resp := getHolderResponse{
		Result: &getHolderResult{
			Address:  req.Address,
			Balance:  uint64(len(tokenIds)),
			TokenIds: tokenIds,
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
