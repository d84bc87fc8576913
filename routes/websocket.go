package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/handlers"
)

func SetupWebSocketRoutes(app *fiber.App, wsHandler *handlers.WSHandler) {
	ws := app.Group("/ws")

	// WebSocket route
	ws.Use("/scans/:scan_id", wsHandler.WebSocketUpgrade)
	ws.Get("/scans/:scan_id", websocket.New(wsHandler.HandleScanEvents))
}
