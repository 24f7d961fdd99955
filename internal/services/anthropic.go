package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 1024

type anthropicClient struct {
	client anthropic.Client
}

func NewAnthropicClient(apiKey string) LLMClient {
	return &anthropicClient{
		client: anthropic.NewClient(
			option.WithAPIKey(strings.TrimSpace(apiKey)),
			option.WithMaxRetries(0),
		),
	}
}

// Generate implements LLMClient.
func (a *anthropicClient) Generate(ctx context.Context, model, systemPrompt, userPrompt string, temperature float32) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(float64(temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic message failed: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	return strings.TrimSpace(b.String()), nil
}
