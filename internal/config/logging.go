package config

import (
	"fmt"

	"github.com/tmalloy/wayfarer/pkg/logger"
)

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" yaml:"level" default:"info"`
	Format string `env:"LOG_FORMAT" yaml:"format" default:"text"`
}

// Validate checks the logging section.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", c.Level)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("invalid log format %q (expected json or text)", c.Format)
	}
	return nil
}

// GetLogLevel parses the configured level, falling back to info.
func (c LoggingConfig) GetLogLevel() logger.Level {
	return logger.ParseLevel(c.Level)
}
