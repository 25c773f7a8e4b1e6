package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status, latencia y request id.
// Debe ir después de requestid.New() para tener el id disponible.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error().Err(err)
		case status >= 400:
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("user_id", GetUserID(c)).
			Msg("petición HTTP")
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
