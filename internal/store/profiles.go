package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmalloy/wayfarer/internal/storage"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

const profilesPath = "users.json"

// ProfileStore keeps the registry of everyone who has ever signed in, as a
// JSON array in users.json. Entries are append-only and deduplicated by
// exact email match.
type ProfileStore struct {
	provider storage.FileProvider
	log      logger.Logger
}

// NewProfileStore creates a profile registry backed by the given provider.
func NewProfileStore(provider storage.FileProvider, log logger.Logger) *ProfileStore {
	if provider == nil {
		panic("file provider cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}
	return &ProfileStore{provider: provider, log: log}
}

// Record adds identity to the registry unless an entry with the same email
// already exists. Email comparison is byte-exact; no normalization is
// applied. Recording an existing user is a no-op and leaves the stored
// entry untouched.
func (s *ProfileStore) Record(ctx context.Context, identity UserIdentity) error {
	if identity.Email == "" {
		return fmt.Errorf("cannot record identity with empty email")
	}

	profiles, err := s.List(ctx)
	if err != nil {
		return err
	}

	for _, p := range profiles {
		if p.Email == identity.Email {
			return nil
		}
	}

	profiles = append(profiles, identity)

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user profiles: %w", err)
	}
	if err := s.provider.Write(ctx, profilesPath, data); err != nil {
		return fmt.Errorf("failed to write user profiles: %w", err)
	}

	s.log.Info("Recorded new user profile", logger.StringField("email", identity.Email))
	return nil
}

// List returns every recorded identity. A missing or unreadable registry
// yields an empty list.
func (s *ProfileStore) List(ctx context.Context) ([]UserIdentity, error) {
	exists, err := s.provider.Exists(ctx, profilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check user profiles: %w", err)
	}
	if !exists {
		return []UserIdentity{}, nil
	}

	data, err := s.provider.Read(ctx, profilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user profiles: %w", err)
	}

	var profiles []UserIdentity
	if err := json.Unmarshal(data, &profiles); err != nil {
		s.log.Warn("Corrupt user profile registry, starting empty", logger.ErrorField(err))
		return []UserIdentity{}, nil
	}
	return profiles, nil
}
