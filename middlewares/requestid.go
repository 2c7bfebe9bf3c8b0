package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"invoice-portal/logger"
)

// RequestID tags every request with an id (honoring X-Request-ID from the
// caller) and stores a pre-fielded log entry in locals.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestID", id)
		c.Locals("log", logger.L.WithField("request_id", id))
		return c.Next()
	}
}
