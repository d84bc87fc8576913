package handlers

import (
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/services"
)

type ConsentHandler struct {
	consentService *services.ConsentService
}

func NewConsentHandler(consentService *services.ConsentService) *ConsentHandler {
	return &ConsentHandler{consentService: consentService}
}

func (h *ConsentHandler) Status(c *fiber.Ctx) error {
	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session required"})
	}
	return c.JSON(fiber.Map{"notice_required": h.consentService.Needed(c.UserContext(), sessionID)})
}

func (h *ConsentHandler) Agree(c *fiber.Ctx) error {
	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session required"})
	}
	if err := h.consentService.Grant(c.UserContext(), sessionID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "agreed"})
}
