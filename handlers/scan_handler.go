package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"medscan_gateway/models"
	"medscan_gateway/services"
)

type ScanHandler struct {
	ingestService *services.IngestService
	scanService   *services.ScanService
}

func NewScanHandler(ingestService *services.IngestService, scanService *services.ScanService) *ScanHandler {
	return &ScanHandler{ingestService: ingestService, scanService: scanService}
}

// StageScan accepts the selected file plus how it was selected; only
// drag-and-drop sources get content-type checked.
func (h *ScanHandler) StageScan(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File required"})
	}
	source := models.IngestSource(c.FormValue("source", string(models.SourcePicker)))

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Could not read file")
	}

	scan, err := h.ingestService.Stage(
		userID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
		source,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.StageScanResp{
		ScanID:      scan.ID,
		Filename:    scan.Filename,
		ContentType: scan.ContentType,
		Preview:     scan.Preview,
		Status:      scan.Status,
	})
}

func (h *ScanHandler) RemoveScan(c *fiber.Ctx) error {
	h.ingestService.Remove(c.Params("scan_id"), userID(c))
	return c.JSON(fiber.Map{"status": "removed"})
}

func (h *ScanHandler) AnalyzeScan(c *fiber.Ctx) error {
	var req models.AnalyzeScanReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	result, err := h.scanService.Analyze(c.UserContext(), c.Params("scan_id"), req.ImageType, userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ScanHandler) ScanHistory(c *fiber.Ctx) error {
	records, err := h.scanService.History(c.UserContext(), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"scans": records})
}
