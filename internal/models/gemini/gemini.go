// Package gemini implements the chat model interface on Google's Gemini
// API. It is the default provider.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/tmalloy/wayfarer/internal/models"
)

const defaultModel = "gemini-1.5-pro"

// Model talks to the Gemini generative language API.
type Model struct {
	client    *genai.Client
	modelName string
}

// New creates a Gemini-backed chat model. An empty modelName selects the
// default.
func New(ctx context.Context, apiKey, modelName string) (*Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Model{client: client, modelName: modelName}, nil
}

// Name returns the model identifier.
func (m *Model) Name() string {
	return m.modelName
}

// Complete sends the prompt as a single user turn and returns the reply.
func (m *Model) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx, m.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", &models.ChatError{Provider: "gemini", Err: err}
	}

	return models.OrFallbackReply(result.Text()), nil
}
