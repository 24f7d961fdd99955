package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type jobContext struct {
	JobTitle       string
	JobDescription string
	Backend        models.Backend
}

// parseJobContext reads the shared form fields. An explicit provider field wins
// over the model_choice label.
func parseJobContext(c *fiber.Ctx, catalog services.BackendCatalog) (jobContext, error) {
	backend, err := catalog.Select(c.FormValue("model_choice"), c.FormValue("provider"), c.FormValue("model"))
	if err != nil {
		return jobContext{}, err
	}

	return jobContext{
		JobTitle:       c.FormValue("job_title"),
		JobDescription: c.FormValue("job_description"),
		Backend:        backend,
	}, nil
}
