package services

import (
	"slices"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// BuildResultTable flattens analyses into rows and stable-sorts them by fit
// score, highest first; equal scores keep their input order.
func BuildResultTable(analyses []FileAnalysis) []models.ResultRow {
	rows := make([]models.ResultRow, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, models.NewResultRow(a.File.Name(), a.Result))
	}

	slices.SortStableFunc(rows, func(a, b models.ResultRow) int {
		return b.FitScore - a.FitScore
	})

	return rows
}
