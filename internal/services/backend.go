package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	ChoiceOpenAI = "OpenAI GPT-4o-mini"
	ChoiceOllama = "Ollama (llama3.2:1b)"
)

// BackendCatalog holds the fixed model identifier of every provider.
type BackendCatalog struct {
	OpenAIModel    string
	OllamaModel    string
	GeminiModel    string
	AnthropicModel string
}

func DefaultBackendCatalog() BackendCatalog {
	return BackendCatalog{
		OpenAIModel:    models.DefaultOpenAIModel,
		OllamaModel:    models.DefaultOllamaModel,
		GeminiModel:    models.DefaultGeminiModel,
		AnthropicModel: models.DefaultAnthropicModel,
	}
}

// Override returns c with every non-blank model of o applied.
func (c BackendCatalog) Override(o BackendCatalog) BackendCatalog {
	pick := func(current, override string) string {
		if override = strings.TrimSpace(override); override != "" {
			return override
		}
		return current
	}
	return BackendCatalog{
		OpenAIModel:    pick(c.OpenAIModel, o.OpenAIModel),
		OllamaModel:    pick(c.OllamaModel, o.OllamaModel),
		GeminiModel:    pick(c.GeminiModel, o.GeminiModel),
		AnthropicModel: pick(c.AnthropicModel, o.AnthropicModel),
	}
}

// Choices lists the model-choice labels offered to users; the first is the default.
func (c BackendCatalog) Choices() []string {
	return []string{ChoiceOpenAI, ChoiceOllama}
}

// Resolve maps a model-choice label to a backend. Any label mentioning "openai"
// in any case selects OpenAI; everything else, including unknown labels, falls
// back to the local Ollama backend.
func (c BackendCatalog) Resolve(choice string) models.Backend {
	if strings.Contains(strings.ToLower(choice), "openai") {
		return models.Backend{Provider: models.ProviderOpenAI, Model: c.OpenAIModel}
	}
	return models.Backend{Provider: models.ProviderOllama, Model: c.OllamaModel}
}

// Explicit builds a backend from a provider name and optional model, bypassing
// label resolution. An empty model selects the provider's configured model.
func (c BackendCatalog) Explicit(provider, model string) (models.Backend, error) {
	p := models.Provider(strings.ToLower(strings.TrimSpace(provider)))

	defaults := map[models.Provider]string{
		models.ProviderOpenAI:    c.OpenAIModel,
		models.ProviderOllama:    c.OllamaModel,
		models.ProviderGemini:    c.GeminiModel,
		models.ProviderAnthropic: c.AnthropicModel,
	}

	def, ok := defaults[p]
	if !ok {
		return models.Backend{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = def
	}

	return models.Backend{Provider: p, Model: model}, nil
}

// Select prefers an explicit provider when one is given and otherwise resolves the label.
func (c BackendCatalog) Select(choice, provider, model string) (models.Backend, error) {
	if strings.TrimSpace(provider) != "" {
		return c.Explicit(provider, model)
	}
	return c.Resolve(choice), nil
}
