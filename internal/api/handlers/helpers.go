package handlers

import "github.com/gofiber/fiber/v2"

// The UI contract reports failures in the body, not the HTTP status: every
// endpoint answers 200 with a success flag plus a reason string.
func fail(c *fiber.Ctx, reason string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": false,
		"error":   reason,
	})
}
