package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer       services.AnalyzerService
	storageService services.StorageService
	catalog        services.BackendCatalog
	maxFileSize    int64
	logger         *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	storageService services.StorageService,
	catalog services.BackendCatalog,
	maxFileSize int64,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:       analyzer,
		storageService: storageService,
		catalog:        catalog,
		maxFileSize:    maxFileSize,
		logger:         logger,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	job, err := parseJobContext(c, h.catalog)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"warning": services.NoResumeWarning,
		})
	}

	if resume.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	ref, err := h.storageService.SaveFile(resume)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}
	defer h.cleanup(ref)

	analysis, err := h.analyzer.AnalyzeSingle(c.UserContext(), models.AnalysisRequest{
		File:           ref,
		JobTitle:       job.JobTitle,
		JobDescription: job.JobDescription,
		Backend:        job.Backend,
	})
	if err != nil {
		return analysisError(c, err)
	}

	return c.JSON(models.SingleAnalysisResponse{
		Result:    analysis.Result,
		Backend:   analysis.Backend,
		Markdown:  analysis.Markdown,
		HTML:      analysis.HTML,
		ChartHTML: analysis.Chart,
	})
}

func (h *AnalyzeHandler) cleanup(ref models.FileRef) {
	if err := h.storageService.DeleteFile(ref); err != nil {
		h.logger.Warn("failed to remove upload", zap.Error(err))
	}
}

func analysisError(c *fiber.Ctx, err error) error {
	switch {
	case services.IsUserInputError(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"warning": err.Error(),
		})
	case errors.Is(err, services.ErrUnsupportedFormat):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrExtractionFailed):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrProviderUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
