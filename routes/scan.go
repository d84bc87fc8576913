package routes

import (
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/handlers"
)

func RegisterScanRoutes(app *fiber.App, handler *handlers.ScanHandler, authGate fiber.Handler) {
	scans := app.Group("api/scans", authGate)
	scans.Post("/", handler.StageScan)
	scans.Delete("/:scan_id", handler.RemoveScan)
	scans.Post("/:scan_id/analyze", handler.AnalyzeScan)
	scans.Get("/history", handler.ScanHistory)
}
