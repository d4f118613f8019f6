package config

import "fmt"

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY" yaml:"-"`
	Model  string `env:"GEMINI_MODEL" yaml:"model" default:"gemini-1.5-pro"`
}

// OpenAIConfig holds OpenAI configuration.
type OpenAIConfig struct {
	APIKey string `env:"OPENAI_API_KEY" yaml:"-"`
	Model  string `env:"OPENAI_MODEL" yaml:"model" default:"gpt-4o"`
}

// AnthropicConfig holds Anthropic configuration.
type AnthropicConfig struct {
	APIKey string `env:"ANTHROPIC_API_KEY" yaml:"-"`
	Model  string `env:"CLAUDE_MODEL" yaml:"model" default:"claude-sonnet-4-5-20250929"`
}

// Require returns the Gemini API key or an error when unset.
func (c GeminiConfig) Require() (string, error) {
	if isPlaceholder(c.APIKey) {
		return "", fmt.Errorf("gemini API key not configured (set GEMINI_API_KEY)")
	}
	return c.APIKey, nil
}

// Require returns the OpenAI API key or an error when unset.
func (c OpenAIConfig) Require() (string, error) {
	if isPlaceholder(c.APIKey) {
		return "", fmt.Errorf("openai API key not configured (set OPENAI_API_KEY)")
	}
	return c.APIKey, nil
}

// Require returns the Anthropic API key or an error when unset.
func (c AnthropicConfig) Require() (string, error) {
	if isPlaceholder(c.APIKey) {
		return "", fmt.Errorf("anthropic API key not configured (set ANTHROPIC_API_KEY)")
	}
	return c.APIKey, nil
}
