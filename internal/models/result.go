package models

import (
	"strconv"
	"strings"
)

// ListSeparator joins skill and gap lists in bulk rows.
const ListSeparator = ", "

// CSVHeader is the fixed column order of the bulk export.
var CSVHeader = []string{"file_name", "fit_score", "summary", "top_skills", "top_gaps", "recommendation"}

// ResultRow is the flattened bulk projection of one analysed file.
type ResultRow struct {
	FileName       string `json:"file_name"`
	FitScore       int    `json:"fit_score"`
	Summary        string `json:"summary"`
	TopSkills      string `json:"top_skills"`
	TopGaps        string `json:"top_gaps"`
	Recommendation string `json:"recommendation"`
}

func NewResultRow(fileName string, result AnalysisResult) ResultRow {
	return ResultRow{
		FileName:       fileName,
		FitScore:       result.FitScore,
		Summary:        result.Summary,
		TopSkills:      strings.Join(result.TopSkills, ListSeparator),
		TopGaps:        strings.Join(result.TopGaps, ListSeparator),
		Recommendation: result.Recommendation,
	}
}

// Record returns the row's fields in CSVHeader order.
func (r ResultRow) Record() []string {
	return []string{
		r.FileName,
		strconv.Itoa(r.FitScore),
		r.Summary,
		r.TopSkills,
		r.TopGaps,
		r.Recommendation,
	}
}

type SingleAnalysisResponse struct {
	Result    AnalysisResult `json:"result"`
	Backend   Backend        `json:"backend"`
	Markdown  string         `json:"markdown"`
	HTML      string         `json:"html"`
	ChartHTML string         `json:"chart_html"`
}

type BulkAnalysisResponse struct {
	Backend     Backend     `json:"backend"`
	Rows        []ResultRow `json:"rows"`
	DownloadURL string      `json:"download_url,omitempty"`
}

type ModelChoicesResponse struct {
	Choices   []string   `json:"choices"`
	Default   string     `json:"default"`
	Providers []Provider `json:"providers"`
}
