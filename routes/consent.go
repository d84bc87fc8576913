package routes

import (
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/handlers"
)

// Consent is deliberately outside the auth gate: the notice shows
// before sign-in completes.
func RegisterConsentRoutes(app *fiber.App, handler *handlers.ConsentHandler) {
	consent := app.Group("api/consent")
	consent.Get("/", handler.Status)
	consent.Post("/", handler.Agree)
}
