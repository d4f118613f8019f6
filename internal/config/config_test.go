package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalloy/wayfarer/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "wayfarer", cfg.ServiceName)
	assert.Equal(t, "gemini", cfg.ChatProvider)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "./data", cfg.Storage.LocalDir)
	assert.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Monitoring.MetricsEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAT_PROVIDER", "anthropic")
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("STORAGE_S3_BUCKET", "wayfarer-data")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.ChatProvider)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "wayfarer-data", cfg.Storage.S3Bucket)
	assert.Equal(t, logger.DebugLevel, cfg.Logging.GetLogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chat_provider: openai
storage:
  backend: local
  local_dir: /tmp/wf
openai:
  model: gpt-4o-mini
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.ChatProvider)
	assert.Equal(t, "/tmp/wf", cfg.Storage.LocalDir)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	cfg, err := Load("/no/such/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "wayfarer", cfg.ServiceName)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{name: "unknown provider", mutate: func(c *AppConfig) { c.ChatProvider = "bard" }},
		{name: "unknown storage backend", mutate: func(c *AppConfig) { c.Storage.Backend = "ftp" }},
		{name: "s3 without bucket", mutate: func(c *AppConfig) { c.Storage.Backend = "s3"; c.Storage.S3Bucket = "" }},
		{name: "bad log level", mutate: func(c *AppConfig) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMapsConfig_PlaceholderKeyIsUnconfigured(t *testing.T) {
	tests := []struct {
		key        string
		configured bool
	}{
		{key: "", configured: false},
		{key: "YOUR_GOOGLE_MAPS_API_KEY_HERE", configured: false},
		{key: "your_google_maps_api_key_here", configured: false},
		{key: "AIzaRealLookingKey", configured: true},
	}

	for _, tt := range tests {
		c := MapsConfig{APIKey: tt.key}
		assert.Equal(t, tt.configured, c.Configured(), "key %q", tt.key)
		_, err := c.Require()
		if tt.configured {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
	}
}

func TestProviderRequire(t *testing.T) {
	_, err := GeminiConfig{}.Require()
	assert.Error(t, err)
	key, err := GeminiConfig{APIKey: "k"}.Require()
	require.NoError(t, err)
	assert.Equal(t, "k", key)

	_, err = OpenAIConfig{APIKey: "your_openai_key_here"}.Require()
	assert.Error(t, err)

	_, err = AnthropicConfig{APIKey: "sk-ant-xyz"}.Require()
	assert.NoError(t, err)
}
