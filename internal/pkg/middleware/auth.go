package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glimmerpics/glimmer/internal/pkg/usercontext"
)

// RequireEditor gates mutating routes behind a signed-in editor and returns
// JSON 401 otherwise.
func RequireEditor(c *fiber.Ctx) error {
	if !usercontext.IsEditor(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "editor login required",
		})
	}
	return c.Next()
}
