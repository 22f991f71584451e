package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// AuthRateLimiter - Limitador para el endpoint de login
// 10 requests por minuto por IP (protege contra fuerza bruta)
func AuthRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Authentication rate limit exceeded",
				"retry_after": 60,
				"message":     "Demasiados intentos de login. Reintente en 1 minuto.",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// ExportRateLimiter - Limitador para exportaciones e impresión
// 10 requests cada 5 minutos: cada export recorre el rango completo y la
// impresión lanza un Chrome headless.
func ExportRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Export rate limit exceeded",
				"retry_after": 300,
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
