package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("", "gpt-4o")
	assert.Error(t, err)
}

func TestNew_DefaultsModelName(t *testing.T) {
	m, err := New("test-key", "")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", m.Name())
}
