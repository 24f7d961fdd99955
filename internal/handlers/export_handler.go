package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/services"
)

type ExportHandler struct {
	exporter services.CSVExporter
}

func NewExportHandler(exporter services.CSVExporter) *ExportHandler {
	return &ExportHandler{
		exporter: exporter,
	}
}

// HandleDownload handles GET /export/csv
func (h *ExportHandler) HandleDownload(c *fiber.Ctx) error {
	if !h.exporter.Exists() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No export available. Run a bulk analysis first.",
		})
	}

	return c.Download(h.exporter.Path(), filepath.Base(h.exporter.Path()))
}
