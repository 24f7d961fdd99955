package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type MetaHandler struct {
	catalog services.BackendCatalog
	router  services.LLMRouter
}

func NewMetaHandler(catalog services.BackendCatalog, router services.LLMRouter) *MetaHandler {
	return &MetaHandler{
		catalog: catalog,
		router:  router,
	}
}

// HandleHealth handles GET /health
func (h *MetaHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleModels handles GET /models
func (h *MetaHandler) HandleModels(c *fiber.Ctx) error {
	choices := h.catalog.Choices()
	return c.JSON(models.ModelChoicesResponse{
		Choices:   choices,
		Default:   choices[0],
		Providers: h.router.Providers(),
	})
}
