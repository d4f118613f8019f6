package config

import "fmt"

// MapsConfig holds Google Maps configuration.
type MapsConfig struct {
	APIKey string `env:"GOOGLE_MAPS_API_KEY" yaml:"-"`
}

// Configured reports whether a real API key is present.
func (c MapsConfig) Configured() bool {
	return !isPlaceholder(c.APIKey)
}

// Require returns the API key or an error when it is absent or still a
// placeholder.
func (c MapsConfig) Require() (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("google maps API key not configured (set GOOGLE_MAPS_API_KEY)")
	}
	return c.APIKey, nil
}
