// Package anthropic implements the chat model interface on the Anthropic
// messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tmalloy/wayfarer/internal/models"
)

const (
	defaultModel     = string(anthropic.ModelClaudeSonnet4_5_20250929)
	defaultMaxTokens = 4000
)

// Model talks to the Anthropic messages endpoint.
type Model struct {
	client    anthropic.Client
	modelName string
}

// New creates an Anthropic-backed chat model. An empty modelName selects
// the default.
func New(apiKey, modelName string, opts ...option.RequestOption) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client := anthropic.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &Model{client: client, modelName: modelName}, nil
}

// Name returns the model identifier.
func (m *Model) Name() string {
	return m.modelName
}

// Complete sends the prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (m *Model) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.modelName),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &models.ChatError{Provider: "anthropic", Err: err}
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return models.OrFallbackReply(b.String()), nil
}
