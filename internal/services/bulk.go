package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// FileAnalysis keeps a result associated with the file it came from.
type FileAnalysis struct {
	File   models.FileRef
	Result models.AnalysisResult
}

// BulkRunner analyses every file of a batch concurrently and waits for all of them.
type BulkRunner interface {
	Run(ctx context.Context, files []models.FileRef, jobTitle, jobDescription string, backend models.Backend) ([]FileAnalysis, error)
}

type bulkRunner struct {
	extractor   TextExtractor
	summarizer  SummarizerService
	concurrency int
	logger      *zap.Logger
}

func NewBulkRunner(extractor TextExtractor, summarizer SummarizerService, concurrency int, log *zap.Logger) BulkRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &bulkRunner{
		extractor:   extractor,
		summarizer:  summarizer,
		concurrency: concurrency,
		logger:      logger.OrNop(log),
	}
}

// Run implements BulkRunner. The returned slice is in input order. Extraction
// failures become per-file sentinel results; a backend transport failure
// cancels the remaining work and is returned.
func (b *bulkRunner) Run(ctx context.Context, files []models.FileRef, jobTitle, jobDescription string, backend models.Backend) ([]FileAnalysis, error) {
	if len(files) == 0 {
		return nil, nil
	}

	batchID := uuid.New().String()
	log := logger.ForBatch(logger.ForBackend(b.logger, backend), batchID)

	log.Info("🚀 bulk batch started",
		zap.Int("files", len(files)),
		zap.Int("concurrency", b.concurrency),
	)

	results := make([]FileAnalysis, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, file := range files {
		g.Go(func() error {
			result, err := b.analyzeOne(gctx, file, jobTitle, jobDescription, backend, log)
			if err != nil {
				return err
			}
			results[i] = FileAnalysis{File: file, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("❌ bulk batch aborted", zap.Error(err))
		return nil, err
	}

	log.Info("✅ bulk batch completed", zap.Int("files", len(files)))
	return results, nil
}

func (b *bulkRunner) analyzeOne(ctx context.Context, file models.FileRef, jobTitle, jobDescription string, backend models.Backend, log *zap.Logger) (models.AnalysisResult, error) {
	fileLog := logger.ForFile(log, file.Name())

	doc, err := b.extractor.Extract(file.Path)
	if err != nil {
		fileLog.Warn("⚠️ text extraction failed, recording sentinel row", zap.Error(err))
		return models.ExtractionFailedResult(err.Error()), nil
	}

	result, err := b.summarizer.Summarize(ctx, doc.Text, jobTitle, jobDescription, backend)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to analyze %s: %w", file.Name(), err)
	}

	fileLog.Info("👷 file analyzed", zap.Int("fit_score", result.FitScore))
	return result, nil
}
