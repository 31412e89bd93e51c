package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

type getStatusResult struct {
	CurrentIndex int       `json:"currentIndex"`
	Active       bool      `json:"active"`
	Complete     bool      `json:"complete"`
	AsOf         time.Time `json:"asOf"`
}

type getStatusResponse = HttpResponse[getStatusResult]

func (h *HttpHandler) GetStatus(ctx *fiber.Ctx) (err error) {
	status := h.service.Engine().Status()

	resp := getStatusResponse{
		Result: &getStatusResult{
			CurrentIndex: status.CurrentIndex,
			Active:       status.Active,
			Complete:     status.Complete,
			AsOf:         status.AsOf.UTC(),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
