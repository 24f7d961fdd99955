package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type llmCall struct {
	model        string
	systemPrompt string
	userPrompt   string
	temperature  float32
}

type stubLLMClient struct {
	mu       sync.Mutex
	response string
	err      error
	calls    []llmCall
}

func (s *stubLLMClient) Generate(_ context.Context, model, systemPrompt, userPrompt string, temperature float32) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, llmCall{model: model, systemPrompt: systemPrompt, userPrompt: userPrompt, temperature: temperature})
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLMClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// stubExtractor returns the text registered for a base name, or err for names in failures.
type stubExtractor struct {
	mu       sync.Mutex
	texts    map[string]string
	failures map[string]error
	calls    []string
}

func (s *stubExtractor) Extract(filePath string) (*models.ExtractedDocument, error) {
	name := filepath.Base(filePath)

	s.mu.Lock()
	s.calls = append(s.calls, name)
	s.mu.Unlock()

	if err, ok := s.failures[name]; ok {
		return nil, err
	}
	text, ok := s.texts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
	return &models.ExtractedDocument{
		Text: text,
		Meta: models.DocumentMeta{Path: filePath, Extension: filepath.Ext(name), Chars: len(text)},
	}, nil
}

func (s *stubExtractor) SupportedExtensions() []string {
	return []string{".txt"}
}

// stubSummarizer scores a resume by looking its text up in scores.
type stubSummarizer struct {
	mu       sync.Mutex
	scores   map[string]int
	err      error
	backends []models.Backend
}

func (s *stubSummarizer) Summarize(_ context.Context, resumeText, _, _ string, backend models.Backend) (models.AnalysisResult, error) {
	s.mu.Lock()
	s.backends = append(s.backends, backend)
	s.mu.Unlock()

	if s.err != nil {
		return models.AnalysisResult{}, s.err
	}
	return models.AnalysisResult{
		FitScore:       s.scores[resumeText],
		Summary:        "summary of " + resumeText,
		TopSkills:      []string{"Go", "SQL"},
		TopGaps:        []string{"Spark"},
		Recommendation: "Interview",
	}, nil
}

func (s *stubSummarizer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.backends)
}

type stubExporter struct {
	path  string
	calls int
	rows  []models.ResultRow
}

func (s *stubExporter) Export(rows []models.ResultRow) (string, error) {
	s.calls++
	s.rows = rows
	return s.path, nil
}

func (s *stubExporter) Path() string { return s.path }

func (s *stubExporter) Exists() bool { return s.calls > 0 }

func fileRefs(names ...string) []models.FileRef {
	refs := make([]models.FileRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, models.FileRef{Path: filepath.Join("uploads", name)})
	}
	return refs
}
