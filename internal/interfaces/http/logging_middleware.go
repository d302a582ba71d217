package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/pkg/logger"
)

const localError = "request_error"

// RequestLogger registra cada petición con zerolog: método, ruta, status y duración.
// Las respuestas 5xx incluyen la causa guardada por writeError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			if fe, ok := chainErr.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if cause, ok := c.Locals(localError).(error); ok {
				ev = ev.Err(cause)
			} else if chainErr != nil {
				ev = ev.Err(chainErr)
			}
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duracion", time.Since(start)).
			Str("vendedor_id", GetSellerID(c)).
			Msg("petición HTTP")
		return chainErr
	}
}
