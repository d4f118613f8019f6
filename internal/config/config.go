// Package config defines the application configuration, loaded from a YAML
// file and environment variables at startup and passed explicitly to each
// component. Nothing reads configuration from globals after startup.
package config

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/tmalloy/wayfarer/pkg/config"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

// AppConfig holds all application configuration.
type AppConfig struct {
	ServiceName string `env:"SERVICE_NAME" yaml:"service_name" default:"wayfarer"`
	Version     string `env:"VERSION" yaml:"version" default:"dev"`
	Environment string `env:"ENVIRONMENT" yaml:"environment" default:"development"`

	// ChatProvider selects the AI backend: "gemini", "openai" or "anthropic".
	ChatProvider string `env:"CHAT_PROVIDER" yaml:"chat_provider" default:"gemini"`

	Maps       MapsConfig       `yaml:"maps"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OAuth      OAuthConfig      `yaml:"oauth"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// Load reads configuration from the given YAML file (missing file is fine)
// overlaid with environment variables.
func Load(filepath string) (*AppConfig, error) {
	var cfg AppConfig
	if err := config.GetConfig(&cfg, filepath, true); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field consistency. Per-provider key presence is
// checked lazily where the provider is constructed, because only the
// selected provider's key is needed.
func (c *AppConfig) Validate() error {
	var result error

	switch c.ChatProvider {
	case "gemini", "openai", "anthropic":
	default:
		result = multierror.Append(result, fmt.Errorf(
			"unknown chat provider %q (expected gemini, openai or anthropic)", c.ChatProvider))
	}

	if err := c.Storage.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Logging.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result
}

// LoggerConfig converts the logging section into the logger package's
// config.
func (c *AppConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:   c.Logging.GetLogLevel(),
		Format:  c.Logging.Format,
		Service: c.ServiceName,
	}
}

// isPlaceholder reports whether a key value is one of the fill-me-in
// placeholders that ship in example config files. A placeholder key is
// treated the same as no key at all.
func isPlaceholder(value string) bool {
	if value == "" {
		return true
	}
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "your_") || strings.HasSuffix(lower, "_here")
}
