package store

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/tmalloy/wayfarer/internal/storage"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

const tokenPath = "token.json"

// CredentialStore persists the OAuth token between runs. Load is soft: a
// missing or unreadable token simply means nobody is signed in, and the
// caller decides whether to start an interactive login.
type CredentialStore struct {
	provider storage.FileProvider
	log      logger.Logger
}

// NewCredentialStore creates a credential store backed by the given provider.
func NewCredentialStore(provider storage.FileProvider, log logger.Logger) *CredentialStore {
	if provider == nil {
		panic("file provider cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}
	return &CredentialStore{provider: provider, log: log}
}

// Load returns the stored token, or nil if no valid token file exists.
// Corrupt token files are logged and treated as absent.
func (s *CredentialStore) Load(ctx context.Context) *oauth2.Token {
	exists, err := s.provider.Exists(ctx, tokenPath)
	if err != nil || !exists {
		return nil
	}

	data, err := s.provider.Read(ctx, tokenPath)
	if err != nil {
		s.log.Warn("Failed to read stored token", logger.ErrorField(err))
		return nil
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		s.log.Warn("Stored token is corrupt, ignoring", logger.ErrorField(err))
		return nil
	}
	return &token
}

// Save persists the token, overwriting any previous one.
func (s *CredentialStore) Save(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return fmt.Errorf("cannot save nil token")
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := s.provider.Write(ctx, tokenPath, data); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing when no token exists is a no-op.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.provider.Delete(ctx, tokenPath); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
