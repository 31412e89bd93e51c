package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
)

type transferRequest struct {
	Caller  string `json:"caller"`
	From    string `json:"from"`
	To      string `json:"to"`
	TokenId uint64 `json:"tokenId"`
}

func (r transferRequest) Validate() error {
	var errList []error
	if r.Caller == "" {
		errList = append(errList, errors.New("'caller' is required"))
	}
	if r.From == "" {
		errList = append(errList, errors.New("'from' is required"))
	}
	if r.To == "" {
		errList = append(errList, errors.New("'to' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type transferResponse = HttpResponse[getTokenResult]

// Transfer ingests an ownership transfer settled by the token standard
// collaborator so the holder index stays consistent.
func (h *HttpHandler) Transfer(ctx *fiber.Ctx) (err error) {
	var req transferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(errors.WithStack(err), "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	if err := h.service.ApplyTransfer(ctx.UserContext(), req.From, req.To, req.TokenId, req.Caller); err != nil {
		return errors.Wrap(err, "error during ApplyTransfer")
	}

	token, err := h.service.Engine().Token(req.TokenId)
	if err != nil {
		return errors.Wrap(err, "error during Token")
	}
	resp := transferResponse{
		Result: &getTokenResult{
			Id:       token.ID,
			Owner:    token.Owner,
			MintedAt: token.MintedAt.UTC(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
