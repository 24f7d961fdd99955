package models

import "strings"

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderOllama    Provider = "ollama"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// Models used when configuration leaves a provider's model unset.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultOllamaModel    = "llama3.2:1b"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// Backend is the (provider, model) pair used for every call of one request or batch.
type Backend struct {
	Provider Provider `json:"provider"`
	Model    string   `json:"model"`
}

// AnalysisRequest is the immutable input of one resume analysis.
type AnalysisRequest struct {
	File           FileRef
	JobTitle       string
	JobDescription string
	Backend        Backend
}

type AnalysisResult struct {
	FitScore       int      `json:"fit_score"`
	Summary        string   `json:"summary"`
	TopSkills      []string `json:"top_skills"`
	TopGaps        []string `json:"top_gaps"`
	Recommendation string   `json:"recommendation"`
}

const (
	InvalidJSONSummary   = "Invalid JSON received from model."
	UnableRecommendation = "Unable to evaluate."
)

// InvalidResponseResult is the terminal value used when the model output cannot be decoded.
func InvalidResponseResult() AnalysisResult {
	return AnalysisResult{
		FitScore:       0,
		Summary:        InvalidJSONSummary,
		TopSkills:      []string{},
		TopGaps:        []string{},
		Recommendation: UnableRecommendation,
	}
}

// ExtractionFailedResult stands in for a bulk item whose text could not be extracted.
func ExtractionFailedResult(reason string) AnalysisResult {
	summary := "Text extraction failed."
	if reason = strings.TrimSpace(reason); reason != "" {
		summary = "Text extraction failed: " + reason
	}
	return AnalysisResult{
		FitScore:       0,
		Summary:        summary,
		TopSkills:      []string{},
		TopGaps:        []string{},
		Recommendation: UnableRecommendation,
	}
}

// ClampScore bounds a score to [0, 100].
func ClampScore(score int) int {
	return max(0, min(100, score))
}
