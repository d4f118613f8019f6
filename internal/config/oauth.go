package config

import (
	"fmt"
	"os"
)

// OAuthConfig holds the Google OAuth client settings for interactive login.
type OAuthConfig struct {
	// ClientSecretPath points to the downloaded Google client secret JSON.
	ClientSecretPath string `env:"OAUTH_CLIENT_SECRET_PATH" yaml:"client_secret_path" default:"client_secret.json"`
}

// ReadClientSecret loads the client secret file.
func (c OAuthConfig) ReadClientSecret() ([]byte, error) {
	data, err := os.ReadFile(c.ClientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth client secret %s: %w", c.ClientSecretPath, err)
	}
	return data, nil
}
