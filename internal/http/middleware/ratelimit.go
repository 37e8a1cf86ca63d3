package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitMessage is returned once a client exhausts its window.
const RateLimitMessage = "Too many requests, please try again later."

// RateLimit allows max requests per client IP in each window. Requests over
// the limit fail with a 429 fiber.Error so the global error handler renders them.
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == MetricsPath
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, RateLimitMessage)
		},
	})
}
