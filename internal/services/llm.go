package services

import (
	"context"
	"fmt"
	"sort"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// LLMClient sends one system+user exchange to a chat model and returns its raw text.
type LLMClient interface {
	Generate(ctx context.Context, model, systemPrompt, userPrompt string, temperature float32) (string, error)
}

// LLMRouter maps a provider to the client that serves it.
type LLMRouter interface {
	Client(provider models.Provider) (LLMClient, error)
	Providers() []models.Provider
}

type llmRouter struct {
	clients map[models.Provider]LLMClient
}

func NewLLMRouter(clients map[models.Provider]LLMClient) LLMRouter {
	registered := make(map[models.Provider]LLMClient, len(clients))
	for provider, client := range clients {
		if client != nil {
			registered[provider] = client
		}
	}
	return &llmRouter{clients: registered}
}

// Client implements LLMRouter.
func (r *llmRouter) Client(provider models.Provider) (LLMClient, error) {
	client, ok := r.clients[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, provider)
	}
	return client, nil
}

// Providers implements LLMRouter.
func (r *llmRouter) Providers() []models.Provider {
	providers := make([]models.Provider, 0, len(r.clients))
	for provider := range r.clients {
		providers = append(providers, provider)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}
