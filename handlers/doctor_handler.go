package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"medscan_gateway/models"
	"medscan_gateway/services"
)

type DoctorHandler struct {
	doctorService *services.DoctorService
}

func NewDoctorHandler(doctorService *services.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// Locate turns device coordinates into a default search location.
// A failed lookup is reported as geo_error, never as an HTTP failure.
func (h *DoctorHandler) Locate(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coordinates"})
	}

	location := h.doctorService.Locate(c.UserContext(), lat, lon)
	return c.JSON(models.LocateRes{
		Location: location,
		GeoError: location == "",
	})
}

func (h *DoctorHandler) Search(c *fiber.Ctx) error {
	res, err := h.doctorService.Search(
		c.UserContext(),
		c.Query("location"),
		c.Query("specialty"),
		c.QueryInt("page", 1),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *DoctorHandler) Book(c *fiber.Ctx) error {
	var req models.AppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	res, err := h.doctorService.Book(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
