package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ValidateID rejects malformed :id params before they reach the database,
// where a bad uuid cast would surface as a 500.
func ValidateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Params("id"); id != "" {
			if _, err := uuid.Parse(id); err != nil {
				return fiber.NewError(fiber.StatusNotFound, "not found")
			}
		}
		return c.Next()
	}
}
