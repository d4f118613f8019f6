package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalloy/wayfarer/internal/storage"
)

func emptyProfileStore(t *testing.T) *ProfileStore {
	t.Helper()
	return NewProfileStore(storage.NewLocalFileProvider(t.TempDir()), testLogger())
}

func TestProfileStore_RecordAndList(t *testing.T) {
	s := emptyProfileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, UserIdentity{Name: "Ada", Email: "ada@example.com", Picture: "https://example.com/ada.png"}))

	profiles, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Ada", profiles[0].Name)
	assert.Equal(t, "ada@example.com", profiles[0].Email)
}

func TestProfileStore_RecordDedupsByEmail(t *testing.T) {
	s := emptyProfileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, UserIdentity{Name: "Ada", Email: "ada@example.com"}))
	require.NoError(t, s.Record(ctx, UserIdentity{Name: "Ada Lovelace", Email: "ada@example.com"}))

	profiles, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	// The first recorded entry wins.
	assert.Equal(t, "Ada", profiles[0].Name)
}

func TestProfileStore_DedupIsCaseSensitive(t *testing.T) {
	s := emptyProfileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, UserIdentity{Name: "Ada", Email: "ada@example.com"}))
	require.NoError(t, s.Record(ctx, UserIdentity{Name: "Ada", Email: "Ada@example.com"}))

	profiles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestProfileStore_RecordRejectsEmptyEmail(t *testing.T) {
	s := emptyProfileStore(t)

	err := s.Record(context.Background(), UserIdentity{Name: "Nobody"})
	assert.Error(t, err)
}

func TestProfileStore_ListMissingRegistry(t *testing.T) {
	s := emptyProfileStore(t)

	profiles, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestProfileStore_ListCorruptRegistry(t *testing.T) {
	provider := storage.NewLocalFileProvider(t.TempDir())
	ctx := context.Background()
	require.NoError(t, provider.Write(ctx, "users.json", []byte("not json")))

	s := NewProfileStore(provider, testLogger())
	profiles, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}
