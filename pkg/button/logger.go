package button

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// NewRequestLogger logs every request to the button server. Status polls are
// frequent so successful ones only show up at debug level.
func NewRequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		msg := "Button server request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()
		if fiberError, ok := err.(*fiber.Error); ok {
			code = fiberError.Code
		}

		requestLogger := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("latency", time.Since(startTime).String()).
			Logger()

		switch {
		case code >= fiber.StatusInternalServerError:
			requestLogger.Error().Msg(msg)
		case code >= fiber.StatusBadRequest:
			requestLogger.Warn().Msg(msg)
		case c.Method() == fiber.MethodGet:
			requestLogger.Debug().Msg(msg)
		default:
			requestLogger.Info().Msg(msg)
		}

		return err
	}
}
