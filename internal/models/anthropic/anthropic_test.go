package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("", "")
	assert.Error(t, err)
}

func TestNew_DefaultsModelName(t *testing.T) {
	m, err := New("test-key", "")
	require.NoError(t, err)
	assert.Equal(t, defaultModel, m.Name())
}

func TestNew_KeepsGivenModelName(t *testing.T) {
	m, err := New("test-key", "claude-haiku-4-5")
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5", m.Name())
}
