package logger

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New builds the process-wide zap logger. Production config by default,
// development config when SHOP_ENV=development.
func New() (*zap.Logger, error) {
	if os.Getenv("SHOP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// RequestLogger returns a fiber middleware that logs each request with its
// status and latency.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
