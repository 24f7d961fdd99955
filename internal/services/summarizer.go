package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/models"
)

type SummarizerService interface {
	// Summarize asks the backend to score the resume. Undecodable output yields
	// models.InvalidResponseResult and a nil error; transport failures are returned.
	Summarize(ctx context.Context, resumeText, jobTitle, jobDescription string, backend models.Backend) (models.AnalysisResult, error)
}

type summarizerService struct {
	router        LLMRouter
	promptBuilder *PromptBuilder
	temperature   float32
	logger        *zap.Logger
	maxLogLen     int
}

func NewSummarizerService(router LLMRouter, temperature float32, log *zap.Logger, maxLogLen int) SummarizerService {
	if maxLogLen <= 0 {
		maxLogLen = 200
	}
	return &summarizerService{
		router:        router,
		promptBuilder: NewPromptBuilder(),
		temperature:   temperature,
		logger:        logger.OrNop(log),
		maxLogLen:     maxLogLen,
	}
}

// Summarize implements SummarizerService.
func (s *summarizerService) Summarize(ctx context.Context, resumeText, jobTitle, jobDescription string, backend models.Backend) (models.AnalysisResult, error) {
	client, err := s.router.Client(backend.Provider)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	log := logger.ForBackend(s.logger, backend)

	prompt := s.promptBuilder.BuildResumeAnalysisPrompt(resumeText, jobTitle, jobDescription)
	log.Debug("🤖 llm request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Preview(prompt, s.maxLogLen)),
	)

	raw, err := client.Generate(ctx, backend.Model, s.promptBuilder.SystemPrompt(), prompt, s.temperature)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("failed to call %s: %w", backend.Provider, err)
	}

	log.Debug("✅ llm response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Preview(raw, s.maxLogLen)),
	)

	result, err := ParseAnalysis(raw)
	if err != nil {
		kind := "schema_mismatch"
		if errors.Is(err, ErrMalformedResponse) {
			kind = "malformed_json"
		}
		log.Warn("⚠️ model returned an unusable response",
			zap.String("kind", kind),
			zap.Error(err),
			zap.String("raw", logger.Preview(raw, s.maxLogLen)),
		)
		return models.InvalidResponseResult(), nil
	}

	return result, nil
}

type analysisPayload struct {
	FitScore       json.RawMessage `json:"fit_score"`
	Summary        *string         `json:"summary"`
	TopSkills      *[]string       `json:"top_skills"`
	TopGaps        *[]string       `json:"top_gaps"`
	Recommendation *string         `json:"recommendation"`
}

// ParseAnalysis decodes a model response into an AnalysisResult. The error wraps
// ErrMalformedResponse when the text is not JSON and ErrSchemaMismatch when it is
// JSON but not an object with exactly the five expected, correctly typed fields.
func ParseAnalysis(raw string) (models.AnalysisResult, error) {
	data := []byte(extractJSON(raw))

	if !json.Valid(data) {
		return models.AnalysisResult{}, ErrMalformedResponse
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var payload analysisPayload
	if err := dec.Decode(&payload); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	var missing []string
	if len(payload.FitScore) == 0 || string(payload.FitScore) == "null" {
		missing = append(missing, "fit_score")
	}
	if payload.Summary == nil {
		missing = append(missing, "summary")
	}
	if payload.TopSkills == nil {
		missing = append(missing, "top_skills")
	}
	if payload.TopGaps == nil {
		missing = append(missing, "top_gaps")
	}
	if payload.Recommendation == nil {
		missing = append(missing, "recommendation")
	}
	if len(missing) > 0 {
		return models.AnalysisResult{}, fmt.Errorf("%w: missing %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}

	// a quoted number is a type error, not a number
	score, err := strconv.ParseFloat(string(payload.FitScore), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return models.AnalysisResult{}, fmt.Errorf("%w: fit_score %s is not a number", ErrSchemaMismatch, payload.FitScore)
	}

	return models.AnalysisResult{
		FitScore:       clampFloatScore(score),
		Summary:        strings.TrimSpace(*payload.Summary),
		TopSkills:      nonNil(*payload.TopSkills),
		TopGaps:        nonNil(*payload.TopGaps),
		Recommendation: strings.TrimSpace(*payload.Recommendation),
	}, nil
}

func clampFloatScore(score float64) int {
	return int(math.Round(math.Max(0, math.Min(100, score))))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// extractJSON strips an enclosing markdown fence and the chatter around the
// outermost object. Backticks inside the object are left alone.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		// the info string runs to the end of the fence line
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.Contains(rest[:nl], "{") {
			rest = rest[nl+1:]
		} else {
			rest = strings.TrimPrefix(rest, "json")
		}
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
