package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"
)

// RequireAdminKey validates the X-Admin-Key header against ADMIN_API_KEY.
// Admin routes are disabled entirely when no key is configured.
func RequireAdminKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := os.Getenv("ADMIN_API_KEY")
		if key == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin API is not configured",
			})
		}

		provided := c.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		return c.Next()
	}
}
