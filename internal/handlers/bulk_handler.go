package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const ExportRoute = "/api/v1/export/csv"

type BulkHandler struct {
	analyzer       services.AnalyzerService
	storageService services.StorageService
	catalog        services.BackendCatalog
	maxFileSize    int64
	logger         *zap.Logger
}

func NewBulkHandler(
	analyzer services.AnalyzerService,
	storageService services.StorageService,
	catalog services.BackendCatalog,
	maxFileSize int64,
	logger *zap.Logger,
) *BulkHandler {
	return &BulkHandler{
		analyzer:       analyzer,
		storageService: storageService,
		catalog:        catalog,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleBulk handles POST /analyze/bulk
func (h *BulkHandler) HandleBulk(c *fiber.Ctx) error {
	job, err := parseJobContext(c, h.catalog)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var uploads []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		uploads = form.File["resumes"]
	}

	for _, upload := range uploads {
		if upload.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s too large. Max size: %d bytes", upload.Filename, h.maxFileSize),
			})
		}
	}

	refs := make([]models.FileRef, 0, len(uploads))
	defer func() {
		for _, ref := range refs {
			if err := h.storageService.DeleteFile(ref); err != nil {
				h.logger.Warn("failed to remove upload", zap.Error(err))
			}
		}
	}()

	for _, upload := range uploads {
		ref, err := h.storageService.SaveFile(upload)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to save %s: %v", upload.Filename, err),
			})
		}
		refs = append(refs, ref)
	}

	analysis, err := h.analyzer.AnalyzeBulk(c.UserContext(), refs, job.JobTitle, job.JobDescription, job.Backend)
	if err != nil {
		return analysisError(c, err)
	}

	response := models.BulkAnalysisResponse{
		Backend: analysis.Backend,
		Rows:    analysis.Rows,
	}
	if analysis.ExportPath != "" {
		response.DownloadURL = ExportRoute
	}

	return c.JSON(response)
}
