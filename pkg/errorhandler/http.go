package errorhandler

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/wrightcode/ladybugs/common/errs"
	"github.com/wrightcode/ladybugs/pkg/logger"
	"github.com/wrightcode/ladybugs/pkg/logger/slogx"
)

// statusCodes maps domain error kinds to HTTP status codes. Kinds not listed
// here fall through to the generic handling below.
var statusCodes = map[errs.ErrorKind]int{
	errs.NotFound:            http.StatusNotFound,
	errs.InvalidArgument:     http.StatusBadRequest,
	errs.Unauthorized:        http.StatusForbidden,
	errs.AlreadyInitialized:  http.StatusConflict,
	errs.NoActiveDrop:        http.StatusConflict,
	errs.InsufficientPayment: http.StatusPaymentRequired,
	errs.InvalidTransition:   http.StatusConflict,
	errs.NotStalled:          http.StatusConflict,
	errs.InvalidRate:         http.StatusBadRequest,
	errs.InsufficientFunds:   http.StatusConflict,
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		for kind, status := range statusCodes {
			if errors.Is(err, kind) {
				return errors.WithStack(ctx.Status(status).JSON(map[string]any{
					"error": kind.Error(),
				}))
			}
		}
		if e := new(errs.PublicError); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(http.StatusBadRequest).JSON(map[string]any{
				"error": e.Message(),
			}))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).SendString(e.Error()))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error",
			slogx.String("event", "api_unhandled_error"),
			slogx.Error(err),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
