package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const validResponse = `{"fit_score": 82, "summary": "Strong data background.", "top_skills": ["Python","SQL"], "top_gaps": ["Spark"], "recommendation": "Interview."}`

func newTestSummarizer(client LLMClient, log *zap.Logger) SummarizerService {
	router := NewLLMRouter(map[models.Provider]LLMClient{models.ProviderOpenAI: client})
	return NewSummarizerService(router, 0.1, log, 0)
}

func TestSummarizeDecodesValidResponse(t *testing.T) {
	client := &stubLLMClient{response: validResponse}
	summarizer := newTestSummarizer(client, zap.NewNop())

	backend := DefaultBackendCatalog().Resolve(ChoiceOpenAI)
	result, err := summarizer.Summarize(context.Background(), "Python, SQL, 5 years", "Data Analyst", "SQL, Python, dashboards", backend)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := models.AnalysisResult{
		FitScore:       82,
		Summary:        "Strong data background.",
		TopSkills:      []string{"Python", "SQL"},
		TopGaps:        []string{"Spark"},
		Recommendation: "Interview.",
	}
	if !reflect.DeepEqual(result, expect) {
		t.Fatalf("result = %+v, want %+v", result, expect)
	}

	if client.callCount() != 1 {
		t.Fatalf("expected exactly one backend call, got %d", client.callCount())
	}
	call := client.calls[0]
	if call.model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", call.model)
	}
	if call.temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", call.temperature)
	}
	if !strings.Contains(call.userPrompt, `"Data Analyst"`) || !strings.Contains(call.userPrompt, "SQL, Python, dashboards") {
		t.Errorf("prompt is missing job context: %s", call.userPrompt)
	}
	if !strings.Contains(call.systemPrompt, "strict, valid JSON") {
		t.Errorf("unexpected system prompt: %s", call.systemPrompt)
	}
}

func TestSummarizeReturnsSentinelForUnusableResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
		kind     string
	}{
		{name: "prose", response: "Sure! The candidate looks great.", kind: "malformed_json"},
		{name: "truncated", response: `{"fit_score": 82, "summary": "Str`, kind: "malformed_json"},
		{name: "missing field", response: `{"fit_score": 82, "summary": "s", "top_skills": [], "top_gaps": []}`, kind: "schema_mismatch"},
		{name: "extra field", response: `{"fit_score": 82, "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r", "confidence": 0.9}`, kind: "schema_mismatch"},
		{name: "quoted score", response: `{"fit_score": "82", "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r"}`, kind: "schema_mismatch"},
		{name: "skills not a list", response: `{"fit_score": 82, "summary": "s", "top_skills": "Python", "top_gaps": [], "recommendation": "r"}`, kind: "schema_mismatch"},
		{name: "array", response: `[1, 2, 3]`, kind: "schema_mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			summarizer := newTestSummarizer(&stubLLMClient{response: tt.response}, zap.New(core))

			result, err := summarizer.Summarize(context.Background(), "resume", "title", "jd", models.Backend{Provider: models.ProviderOpenAI, Model: "gpt-4o-mini"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, models.InvalidResponseResult()) {
				t.Fatalf("expected sentinel result, got %+v", result)
			}

			entries := logs.FilterMessage("⚠️ model returned an unusable response").All()
			if len(entries) != 1 {
				t.Fatalf("expected one warning, got %d", len(entries))
			}
			fields := entries[0].ContextMap()
			if fields["kind"] != tt.kind {
				t.Errorf("kind = %v, want %s", fields["kind"], tt.kind)
			}
			if fields["raw"] == "" {
				t.Errorf("expected raw response in log fields")
			}
		})
	}
}

func TestSummarizePropagatesTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	summarizer := newTestSummarizer(&stubLLMClient{err: boom}, zap.NewNop())

	_, err := summarizer.Summarize(context.Background(), "resume", "title", "jd", models.Backend{Provider: models.ProviderOpenAI, Model: "gpt-4o-mini"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error to propagate, got %v", err)
	}
}

func TestSummarizeUnavailableProvider(t *testing.T) {
	client := &stubLLMClient{response: validResponse}
	summarizer := newTestSummarizer(client, zap.NewNop())

	_, err := summarizer.Summarize(context.Background(), "resume", "title", "jd", models.Backend{Provider: models.ProviderGemini, Model: "gemini-2.5-flash"})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if client.callCount() != 0 {
		t.Fatalf("expected no backend call, got %d", client.callCount())
	}
}

func TestParseAnalysis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantScore int
		wantErr   error
	}{
		{name: "plain", raw: validResponse, wantScore: 82},
		{name: "fenced", raw: "```json\n" + validResponse + "\n```", wantScore: 82},
		{name: "chatter around object", raw: "Here you go:\n" + validResponse + "\nThanks", wantScore: 82},
		{name: "rounds fractional score", raw: `{"fit_score": 74.6, "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r"}`, wantScore: 75},
		{name: "clamps high score", raw: `{"fit_score": 140, "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r"}`, wantScore: 100},
		{name: "clamps negative score", raw: `{"fit_score": -3, "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r"}`, wantScore: 0},
		{name: "fence info on the object line", raw: "```json " + validResponse + "```", wantScore: 82},
		{name: "unterminated fence", raw: "```json\n" + validResponse, wantScore: 82},
		{name: "empty", raw: "", wantErr: ErrMalformedResponse},
		{name: "null score", raw: `{"fit_score": null, "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r"}`, wantErr: ErrSchemaMismatch},
		{name: "boolean score", raw: `{"fit_score": true, "summary": "s", "top_skills": [], "top_gaps": [], "recommendation": "r"}`, wantErr: ErrSchemaMismatch},
		{name: "number in skills", raw: `{"fit_score": 50, "summary": "s", "top_skills": [1], "top_gaps": [], "recommendation": "r"}`, wantErr: ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ParseAnalysis(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.FitScore != tt.wantScore {
				t.Fatalf("FitScore = %d, want %d", result.FitScore, tt.wantScore)
			}
			if result.TopSkills == nil || result.TopGaps == nil {
				t.Fatalf("expected non-nil lists, got %+v", result)
			}
		})
	}
}

func TestParseAnalysisKeepsBackticksInValues(t *testing.T) {
	t.Parallel()

	raw := "```json\n" +
		`{"fit_score": 70, "summary": "Ships ` + "```go```" + ` snippets", "top_skills": ["Go"], "top_gaps": [], "recommendation": "Ask about ` + "```" + ` usage"}` +
		"\n```"

	result, err := ParseAnalysis(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary != "Ships ```go``` snippets" {
		t.Fatalf("summary = %q", result.Summary)
	}
	if result.Recommendation != "Ask about ``` usage" {
		t.Fatalf("recommendation = %q", result.Recommendation)
	}
}
