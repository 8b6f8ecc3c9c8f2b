package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/utils/apperr"
	"github.com/sahilchouksey/online-lms/utils/logger"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindBadRequest:   fiber.StatusBadRequest,
	apperr.KindUnauthorized: fiber.StatusUnauthorized,
	apperr.KindForbidden:    fiber.StatusForbidden,
	apperr.KindNotFound:     fiber.StatusNotFound,
	apperr.KindConflict:     fiber.StatusConflict,
	apperr.KindInternal:     fiber.StatusInternalServerError,
}

// ErrorHandler is the app-wide fiber error handler. Handlers may simply return
// service errors; internal causes are logged and never sent to the client.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			status := kindStatus[appErr.Kind]
			if status == 0 {
				status = fiber.StatusInternalServerError
			}
			if status == fiber.StatusInternalServerError {
				log.Error("request failed",
					"method", c.Method(), "path", c.Path(), "error", err,
					"request_id", c.Locals("requestid"))
				msg := appErr.Message
				if msg == "" {
					msg = "Internal server error"
				}
				return InternalServerError(c, msg)
			}
			return Error(c, status, appErr.Message, string(appErr.Kind))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			switch fiberErr.Code {
			case fiber.StatusRequestEntityTooLarge:
				return Error(c, fiberErr.Code, "Request body too large", "PAYLOAD_TOO_LARGE")
			case fiber.StatusNotFound:
				return NotFound(c, "Route not found")
			case fiber.StatusMethodNotAllowed:
				return Error(c, fiberErr.Code, "Method not allowed", "METHOD_NOT_ALLOWED")
			}
			if fiberErr.Code < fiber.StatusInternalServerError {
				return Error(c, fiberErr.Code, fiberErr.Message, "BAD_REQUEST")
			}
		}

		log.Error("unhandled error",
			"method", c.Method(), "path", c.Path(), "error", err,
			"request_id", c.Locals("requestid"))
		return InternalServerError(c, "")
	}
}
