package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type withdrawRequest struct {
	Caller    string `json:"caller"`
	AmountWei string `json:"amountWei"`
}

func (r withdrawRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if _, err := parseWei("amountWei", r.AmountWei); err != nil {
		errList = append(errList, err)
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type withdrawResult struct {
	WithdrawnWei uint128.Uint128 `json:"withdrawnWei"`
	BalanceWei   uint128.Uint128 `json:"balanceWei"`
}

type withdrawResponse = HttpResponse[withdrawResult]

func (h *HttpHandler) Withdraw(ctx *fiber.Ctx) (err error) {
	var req withdrawRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	amount, err := parseWei("amountWei", req.AmountWei)
	if err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}

	if err := h.service.Withdraw(ctx.UserContext(), amount, req.Caller); err != nil {
		return errors.Wrap(err, "error during Withdraw")
	}

	resp := withdrawResponse{
		Result: &withdrawResult{
			WithdrawnWei: amount,
			BalanceWei:   h.service.Engine().TreasuryBalance(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}

type withdrawAllRequest struct {
	Caller string `json:"caller"`
}

func (r withdrawAllRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

func (h *HttpHandler) WithdrawAll(ctx *fiber.Ctx) (err error) {
	var req withdrawAllRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	withdrawn, err := h.service.WithdrawAll(ctx.UserContext(), req.Caller)
	if err != nil {
		return errors.Wrap(err, "error during WithdrawAll")
	}

	resp := withdrawResponse{
		Result: &withdrawResult{
			WithdrawnWei: withdrawn,
			BalanceWei:   h.service.Engine().TreasuryBalance(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
