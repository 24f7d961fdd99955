package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const ollamaAPIKey = "ollama"

type openAIClient struct {
	client openai.Client
}

// NewOpenAIClient talks to the OpenAI chat completions API. An empty baseURL
// keeps the SDK default endpoint.
func NewOpenAIClient(apiKey, baseURL string) LLMClient {
	opts := []option.RequestOption{
		option.WithMaxRetries(0),
	}
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL = normalizeBaseURL(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAIClient{client: openai.NewClient(opts...)}
}

// NewOllamaClient uses Ollama's OpenAI-compatible endpoint (usually http://localhost:11434/v1/).
func NewOllamaClient(baseURL string) LLMClient {
	return NewOpenAIClient(ollamaAPIKey, baseURL)
}

// Generate implements LLMClient.
func (c *openAIClient) Generate(ctx context.Context, model, systemPrompt, userPrompt string, temperature float32) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(float64(temperature)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func normalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
