package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/wrightcode/ladybugs/modules/minter"
)

type HttpHandler struct {
	service *minter.Service
}

func New(service *minter.Service) *HttpHandler {
	return &HttpHandler{
		service: service,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

// parseWei parses a decimal wei amount from a request field.
func parseWei(field, value string) (uint128.Uint128, error) {
	if value == "" {
		return uint128.Zero, errors.Errorf("'%s' is required", field)
	}
	amount, err := uint128.FromString(value)
	if err != nil {
		return uint128.Zero, errors.Errorf("'%s' must be a non-negative integer wei amount", field)
	}
	return amount, nil
}
