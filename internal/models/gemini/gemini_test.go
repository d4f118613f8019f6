package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "", "gemini-1.5-pro")
	assert.Error(t, err)
}

func TestNew_DefaultsModelName(t *testing.T) {
	m, err := New(context.Background(), "test-key", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-pro", m.Name())
}

func TestNew_KeepsGivenModelName(t *testing.T) {
	m, err := New(context.Background(), "test-key", "gemini-2.0-flash")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", m.Name())
}
