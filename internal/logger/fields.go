package logger

import (
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// Field keys used across services.
const (
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
	FieldFile     = "file"
	FieldBatch    = "batch_id"
)

// OrNop lets constructors accept a nil logger.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// ForBackend tags entries with the provider and model serving a request.
func ForBackend(log *zap.Logger, backend models.Backend) *zap.Logger {
	return OrNop(log).With(
		nonBlank(FieldProvider, string(backend.Provider)),
		nonBlank(FieldModel, backend.Model),
	)
}

// ForFile tags entries with a resume's base name.
func ForFile(log *zap.Logger, name string) *zap.Logger {
	return OrNop(log).With(nonBlank(FieldFile, name))
}

func ForBatch(log *zap.Logger, id string) *zap.Logger {
	return OrNop(log).With(nonBlank(FieldBatch, id))
}

// nonBlank drops the field entirely when value is blank.
func nonBlank(key, value string) zap.Field {
	value = strings.TrimSpace(value)
	if value == "" {
		return zap.Skip()
	}
	return zap.String(key, value)
}
