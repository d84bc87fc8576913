package routes

import (
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/handlers"
)

func RegisterChatRoutes(app *fiber.App, handler *handlers.ChatHandler, authGate fiber.Handler) {
	chat := app.Group("api/chat", authGate)
	chat.Get("/opening", handler.Opening)
	chat.Post("/", handler.Send)
}
