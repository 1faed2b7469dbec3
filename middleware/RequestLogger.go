package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// RequestLogger logs method, path, status and duration of every request.
// Server errors log at error level, client errors at warn.
// Strings taken from the context are copied: fiber reuses their buffers once the handler returns.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(startTime)),
		}
		if route := c.Route().Name; route != "" {
			fields = append(fields, zap.String("route", utils.CopyString(route)))
		}
		if user, ok := AuthUser(c); ok && user != nil {
			fields = append(fields, zap.String("user", user.Identity()))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}

		return err
	}
}
