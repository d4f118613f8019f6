package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{
		Level:   InfoLevel,
		Format:  "json",
		Service: "wayfarer-test",
		Output:  &buf,
	})

	log.Info("hello", StringField("key", "value"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "wayfarer-test", entry["service"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{
		Level:  WarnLevel,
		Format: "json",
		Output: &buf,
	})

	log.Debug("not logged")
	log.Info("not logged either")
	assert.Zero(t, buf.Len())

	log.Warn("logged")
	assert.NotZero(t, buf.Len())
}

func TestLogger_WithFieldsIsImmutable(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(Config{Level: InfoLevel, Format: "json", Output: &buf})

	derived := base.WithFields(StringField("user", "u@example.com"))

	base.Info("base entry")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasUser := entry["user"]
	assert.False(t, hasUser, "base logger should not carry derived fields")

	buf.Reset()
	derived.Info("derived entry")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "u@example.com", entry["user"])
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field LogField
		want  LogField
	}{
		{"string", StringField("k", "v"), LogField{Key: "k", Value: "v"}},
		{"int", IntField("n", 42), LogField{Key: "n", Value: "42"}},
		{"bool", BoolField("b", true), LogField{Key: "b", Value: "true"}},
		{"duration", DurationField("d", 3 * time.Second), LogField{Key: "d", Value: "3s"}},
		{"error", ErrorField(errors.New("boom")), LogField{Key: "error", Value: "boom"}},
		{"nil error", ErrorField(nil), LogField{Key: "error", Value: "<nil>"}},
		{"generic", Field("f", 1.5), LogField{Key: "f", Value: "1.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("anything else"))
}
