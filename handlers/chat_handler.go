package handlers

import (
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/models"
	"medscan_gateway/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Opening(c *fiber.Ctx) error {
	return c.JSON(h.chatService.Opening(c.UserContext(), userID(c)))
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req models.ChatReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	res, err := h.chatService.Send(c.UserContext(), userID(c), req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
