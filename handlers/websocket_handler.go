package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/pkg/logging"
	"medscan_gateway/platform/events"
)

type WSHandler struct {
	eventPublisher *events.EventPublisher
}

func NewWSHandler(eventPublisher *events.EventPublisher) *WSHandler {
	return &WSHandler{eventPublisher: eventPublisher}
}

func (h *WSHandler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.Status(400).JSON(fiber.Map{"error": "Not a websocket request"})
}

// HandleScanEvents streams progress and lifecycle events for one scan
// so the client can render the upload progress bar.
func (h *WSHandler) HandleScanEvents(c *websocket.Conn) {
	scanID := c.Params("scan_id")
	userID := c.Query("user_id")

	logging.Logger.Info("WebSocket connected",
		"scanID", scanID,
		"userID", userID,
	)

	// cancelable context, cancels when the function ends
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventChan, err := h.eventPublisher.SubscribeScanEvents(ctx)
	if err != nil {
		logging.Logger.Error("Failed to subscribe to events", "error", err)
		if werr := c.WriteMessage(websocket.TextMessage, []byte(`{"error":"Failed to subscribe"}`)); werr != nil {
			return
		}
		return
	}

	err = c.WriteJSON(fiber.Map{
		"type":    "connected",
		"message": "WebSocket connected successfully",
		"scan_id": scanID,
	})
	if err != nil {
		return
	}

	for {
		select {
		case event := <-eventChan:
			if event == nil {
				return
			}
			if event.ScanID != scanID {
				continue
			}
			if userID != "" && event.UserID != userID {
				continue
			}
			data, _ := json.Marshal(event)
			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Logger.Error("Failed to send WebSocket message", "error", err)
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
