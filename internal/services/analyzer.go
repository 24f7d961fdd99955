package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type SingleAnalysis struct {
	Result   models.AnalysisResult
	Backend  models.Backend
	Document models.DocumentMeta
	Markdown string
	HTML     string
	Chart    string
}

type BulkAnalysis struct {
	Backend models.Backend
	Rows    []models.ResultRow
	// ExportPath is empty when nothing was exported.
	ExportPath string
}

// AnalyzerService runs the single-item and bulk pipelines.
type AnalyzerService interface {
	AnalyzeSingle(ctx context.Context, req models.AnalysisRequest) (*SingleAnalysis, error)
	AnalyzeBulk(ctx context.Context, files []models.FileRef, jobTitle, jobDescription string, backend models.Backend) (*BulkAnalysis, error)
}

type analyzerService struct {
	extractor  TextExtractor
	summarizer SummarizerService
	runner     BulkRunner
	exporter   CSVExporter
	logger     *zap.Logger
}

func NewAnalyzerService(
	extractor TextExtractor,
	summarizer SummarizerService,
	runner BulkRunner,
	exporter CSVExporter,
	log *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		extractor:  extractor,
		summarizer: summarizer,
		runner:     runner,
		exporter:   exporter,
		logger:     logger.OrNop(log),
	}
}

// AnalyzeSingle implements AnalyzerService. It extracts and summarizes on the
// calling goroutine; a missing file returns ErrNoResume before any backend call.
func (a *analyzerService) AnalyzeSingle(ctx context.Context, req models.AnalysisRequest) (*SingleAnalysis, error) {
	if strings.TrimSpace(req.File.Path) == "" {
		return nil, ErrNoResume
	}

	doc, err := a.extractor.Extract(req.File.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExtractionFailed, req.File.Name(), err)
	}

	result, err := a.summarizer.Summarize(ctx, doc.Text, req.JobTitle, req.JobDescription, req.Backend)
	if err != nil {
		return nil, err
	}

	markdown := RenderMarkdown(result)
	html, err := MarkdownToHTML(markdown)
	if err != nil {
		return nil, err
	}

	a.logger.Info("✅ resume analyzed",
		zap.String(logger.FieldFile, req.File.Name()),
		zap.Int("fit_score", result.FitScore),
	)

	return &SingleAnalysis{
		Result:   result,
		Backend:  req.Backend,
		Document: doc.Meta,
		Markdown: markdown,
		HTML:     html,
		Chart:    ScoreChart(result.FitScore),
	}, nil
}

// AnalyzeBulk implements AnalyzerService. An empty file list returns an empty
// table without calling the backend or writing the export.
func (a *analyzerService) AnalyzeBulk(ctx context.Context, files []models.FileRef, jobTitle, jobDescription string, backend models.Backend) (*BulkAnalysis, error) {
	if len(files) == 0 {
		return &BulkAnalysis{Backend: backend, Rows: []models.ResultRow{}}, nil
	}

	analyses, err := a.runner.Run(ctx, files, jobTitle, jobDescription, backend)
	if err != nil {
		return nil, err
	}

	rows := BuildResultTable(analyses)
	if len(rows) == 0 {
		return &BulkAnalysis{Backend: backend, Rows: rows}, nil
	}

	path, err := a.exporter.Export(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to export results: %w", err)
	}

	a.logger.Info("💾 bulk results exported", zap.String("path", path), zap.Int("rows", len(rows)))

	return &BulkAnalysis{Backend: backend, Rows: rows, ExportPath: path}, nil
}
