package models

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalloy/wayfarer/pkg/logger"
	"github.com/tmalloy/wayfarer/pkg/metrics"
)

type stubModel struct {
	reply string
	err   error
	calls int
}

func (s *stubModel) Name() string { return "stub-1" }

func (s *stubModel) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func testLogger() logger.Logger {
	return logger.NewLogger(logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func TestChatError(t *testing.T) {
	cause := errors.New("rate limited")
	err := &ChatError{Provider: "gemini", Err: cause}

	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "rate limited")
	assert.ErrorIs(t, err, cause)
}

func TestOrFallbackReply(t *testing.T) {
	assert.Equal(t, "hello", OrFallbackReply("hello"))
	assert.Equal(t, "hello", OrFallbackReply("  hello \n"))
	assert.Equal(t, EmptyReplyFallback, OrFallbackReply(""))
	assert.Equal(t, EmptyReplyFallback, OrFallbackReply("   \n"))
}

func TestWithInstrumentation_PassesThrough(t *testing.T) {
	stub := &stubModel{reply: "a reply"}
	m := WithInstrumentation(stub, testLogger(), metrics.New(testLogger()))

	reply, err := m.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "a reply", reply)
	assert.Equal(t, "stub-1", m.Name())
	assert.Equal(t, 1, stub.calls)
}

func TestWithInstrumentation_PropagatesError(t *testing.T) {
	chatErr := &ChatError{Provider: "stub", Err: errors.New("boom")}
	m := WithInstrumentation(&stubModel{err: chatErr}, testLogger(), nil)

	_, err := m.Complete(context.Background(), "prompt")

	var got *ChatError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "stub", got.Provider)
}
