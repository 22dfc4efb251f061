package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func LoggingMiddleware(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDHeader, requestID)

		// Передаем управление следующему обработчику
		if err := c.Next(); err != nil {
			// Статус выставляет ErrorHandler, поэтому вызываем его до логирования
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"ip", c.IP(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		}
		if claims := Claims(c); claims != nil {
			fields = append(fields, "user_id", claims.UserID)
		}

		switch {
		case status >= 500:
			log.Errorw("HTTP request", fields...)
		case status >= 400:
			log.Warnw("HTTP request", fields...)
		default:
			log.Infow("HTTP request", fields...)
		}
		return nil
	}
}
