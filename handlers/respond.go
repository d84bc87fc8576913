package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"medscan_gateway/services"
)

// respondError maps service errors to the HTTP surface: validation
// failures are the user's to fix, transfer failures carry only the
// generic message (the cause was already logged).
func respondError(c *fiber.Ctx, err error) error {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Message})
	}
	var tErr *services.TransferError
	if errors.As(err, &tErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": tErr.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
}

func userID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
