package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type CSVExporter interface {
	// Export overwrites the export file with the table and returns its path.
	Export(rows []models.ResultRow) (string, error)
	Path() string
	Exists() bool
}

type csvExporter struct {
	path string
	mu   sync.Mutex
}

func NewCSVExporter(path string) CSVExporter {
	return &csvExporter{path: path}
}

// Path implements CSVExporter.
func (e *csvExporter) Path() string {
	return e.path
}

// Exists implements CSVExporter.
func (e *csvExporter) Exists() bool {
	_, err := os.Stat(e.path)
	return err == nil
}

// Export implements CSVExporter.
func (e *csvExporter) Export(rows []models.ResultRow) (string, error) {
	if len(rows) == 0 {
		return "", errors.New("nothing to export")
	}

	data, err := EncodeCSV(rows)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	dir := filepath.Dir(e.path)
	tmp, err := os.CreateTemp(dir, ".bulk-export-*.csv")
	if err != nil {
		return "", fmt.Errorf("failed to create temp export file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to set export file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	if err := os.Rename(tmpName, e.path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to replace export file: %w", err)
	}

	return e.path, nil
}

// EncodeCSV renders the header and one record per row.
func EncodeCSV(rows []models.ResultRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(models.CSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
