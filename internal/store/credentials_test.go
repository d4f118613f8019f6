package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/tmalloy/wayfarer/internal/storage"
)

func emptyCredentialStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(storage.NewLocalFileProvider(t.TempDir()), testLogger())
}

func TestCredentialStore_LoadMissingReturnsNil(t *testing.T) {
	s := emptyCredentialStore(t)

	assert.Nil(t, s.Load(context.Background()))
}

func TestCredentialStore_SaveLoadRoundTrip(t *testing.T) {
	s := emptyCredentialStore(t)
	ctx := context.Background()

	token := &oauth2.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		TokenType:    "Bearer",
		Expiry:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Save(ctx, token))

	loaded := s.Load(ctx)
	require.NotNil(t, loaded)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestCredentialStore_LoadCorruptReturnsNil(t *testing.T) {
	provider := storage.NewLocalFileProvider(t.TempDir())
	ctx := context.Background()
	require.NoError(t, provider.Write(ctx, "token.json", []byte("garbage")))

	s := NewCredentialStore(provider, testLogger())
	assert.Nil(t, s.Load(ctx))
}

func TestCredentialStore_SaveNilToken(t *testing.T) {
	s := emptyCredentialStore(t)

	assert.Error(t, s.Save(context.Background(), nil))
}

func TestCredentialStore_Clear(t *testing.T) {
	s := emptyCredentialStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &oauth2.Token{AccessToken: "abc"}))
	require.NoError(t, s.Clear(ctx))
	assert.Nil(t, s.Load(ctx))

	// Clearing again with nothing stored is fine.
	assert.NoError(t, s.Clear(ctx))
}
