package routes

import (
	"github.com/gofiber/fiber/v2"

	"medscan_gateway/handlers"
)

func RegisterDoctorRoutes(app *fiber.App, handler *handlers.DoctorHandler, authGate fiber.Handler) {
	doctors := app.Group("api/doctors", authGate)
	doctors.Get("/locate", handler.Locate)
	doctors.Get("/", handler.Search)
	doctors.Post("/book", handler.Book)
}
