// Package models defines the chat model abstraction the application talks
// to. Provider implementations live in subpackages; callers depend only on
// the ChatModel interface so fakes can be substituted in tests.
package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmalloy/wayfarer/pkg/logger"
	"github.com/tmalloy/wayfarer/pkg/metrics"
)

// EmptyReplyFallback is returned when a provider answers successfully but
// with no usable text.
const EmptyReplyFallback = "I couldn't generate a response."

// ChatModel is a single-turn completion model.
type ChatModel interface {
	// Name returns the provider model identifier.
	Name() string

	// Complete sends the prompt and returns the reply text. Failures come
	// back as a *ChatError, never folded into the reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatError wraps a provider failure so callers can tell a failed call
// apart from any reply text.
type ChatError struct {
	Provider string
	Err      error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("%s chat error: %v", e.Provider, e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}

// OrFallbackReply substitutes the fallback text for a blank reply.
func OrFallbackReply(reply string) string {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return EmptyReplyFallback
	}
	return reply
}

// instrumented decorates a ChatModel with logging and metrics.
type instrumented struct {
	inner   ChatModel
	log     logger.Logger
	metrics *metrics.Metrics
}

// WithInstrumentation wraps a model so every completion is logged and
// counted.
func WithInstrumentation(inner ChatModel, log logger.Logger, m *metrics.Metrics) ChatModel {
	if inner == nil {
		panic("chat model cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}
	return &instrumented{inner: inner, log: log, metrics: m}
}

func (i *instrumented) Name() string {
	return i.inner.Name()
}

func (i *instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	reply, err := i.inner.Complete(ctx, prompt)
	elapsed := time.Since(start)

	if i.metrics != nil {
		i.metrics.ChatCompletionsTotal.Inc()
		i.metrics.ChatDuration.Observe(elapsed.Seconds())
		if err != nil {
			i.metrics.ChatCompletionsFailed.Inc()
		}
	}

	if err != nil {
		i.log.Error("Chat completion failed",
			logger.StringField("model", i.inner.Name()),
			logger.DurationField("elapsed", elapsed),
			logger.ErrorField(err))
		return "", err
	}

	i.log.Debug("Chat completion succeeded",
		logger.StringField("model", i.inner.Name()),
		logger.DurationField("elapsed", elapsed),
		logger.IntField("reply_chars", len(reply)))
	return reply, nil
}
