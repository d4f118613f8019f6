// Package openai implements the chat model interface on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tmalloy/wayfarer/internal/models"
)

const defaultModel = "gpt-4o"

// Model talks to the OpenAI chat completions endpoint.
type Model struct {
	client    openai.Client
	modelName string
}

// New creates an OpenAI-backed chat model. An empty modelName selects the
// default.
func New(apiKey, modelName string, opts ...option.RequestOption) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client := openai.NewClient(
		append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...,
	)

	return &Model{client: client, modelName: modelName}, nil
}

// Name returns the model identifier.
func (m *Model) Name() string {
	return m.modelName
}

// Complete sends the prompt as a single user message and returns the reply.
func (m *Model) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(m.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", &models.ChatError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return models.OrFallbackReply(""), nil
	}
	return models.OrFallbackReply(resp.Choices[0].Message.Content), nil
}
