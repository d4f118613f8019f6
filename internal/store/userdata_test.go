package store

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmalloy/wayfarer/internal/storage"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.NewLogger(logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func emptyUserDataStore(t *testing.T) *UserDataStore {
	t.Helper()
	return NewUserDataStore(storage.NewLocalFileProvider(t.TempDir()), testLogger())
}

func sampleJourney(dest string) Journey {
	return Journey{
		Origin:            "London",
		Destination:       dest,
		Mode:              "driving",
		Duration:          "1 hour 10 mins",
		Distance:          "56.2 mi",
		DurationInTraffic: "1 hour 25 mins",
		Steps: []Step{
			{Step: 1, Instruction: "Head north on A1", Distance: "0.3 mi", Duration: "2 mins"},
		},
	}
}

func TestUserDataStore_LoadUnknownUserIsEmpty(t *testing.T) {
	s := emptyUserDataStore(t)

	data := s.Load(context.Background(), "nobody@example.com")

	assert.NotNil(t, data.Journeys)
	assert.NotNil(t, data.Conversations)
	assert.NotNil(t, data.Preferences)
	assert.Empty(t, data.Journeys)
	assert.Empty(t, data.Conversations)
}

func TestUserDataStore_LoadCorruptFileIsEmpty(t *testing.T) {
	provider := storage.NewLocalFileProvider(t.TempDir())
	ctx := context.Background()
	require.NoError(t, provider.Write(ctx, "user_data.json", []byte("{not json")))

	s := NewUserDataStore(provider, testLogger())
	data := s.Load(ctx, "a@example.com")

	assert.Empty(t, data.Journeys)
	assert.Empty(t, data.Conversations)
}

func TestUserDataStore_AppendJourneyRoundTrip(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()
	journey := sampleJourney("Cambridge")

	require.NoError(t, s.AppendJourney(ctx, "a@example.com", journey))

	data := s.Load(ctx, "a@example.com")
	require.Len(t, data.Journeys, 1)
	if diff := cmp.Diff(journey, data.Journeys[0].Data); diff != "" {
		t.Errorf("journey mismatch (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, data.Journeys[0].Timestamp)
}

func TestUserDataStore_AppendJourneyIsolatedPerUser(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendJourney(ctx, "a@example.com", sampleJourney("Oxford")))
	require.NoError(t, s.AppendJourney(ctx, "b@example.com", sampleJourney("York")))

	a := s.Load(ctx, "a@example.com")
	b := s.Load(ctx, "b@example.com")
	require.Len(t, a.Journeys, 1)
	require.Len(t, b.Journeys, 1)
	assert.Equal(t, "Oxford", a.Journeys[0].Data.Destination)
	assert.Equal(t, "York", b.Journeys[0].Data.Destination)
}

func TestUserDataStore_JourneyCapDropsOldestOnly(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()

	for i := 0; i < MaxJourneys+1; i++ {
		require.NoError(t, s.AppendJourney(ctx, "a@example.com", sampleJourney(fmt.Sprintf("dest-%d", i))))
	}

	data := s.Load(ctx, "a@example.com")
	require.Len(t, data.Journeys, MaxJourneys)
	assert.Equal(t, "dest-1", data.Journeys[0].Data.Destination)
	assert.Equal(t, fmt.Sprintf("dest-%d", MaxJourneys), data.Journeys[len(data.Journeys)-1].Data.Destination)
}

func TestUserDataStore_ConversationCapDropsOldest(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()

	for i := 0; i < MaxConversations+5; i++ {
		require.NoError(t, s.AppendConversation(ctx, "a@example.com", fmt.Sprintf("reply-%d", i), nil))
	}

	data := s.Load(ctx, "a@example.com")
	require.Len(t, data.Conversations, MaxConversations)
	assert.Equal(t, "reply-5", data.Conversations[0].AIResponse)
}

func TestUserDataStore_AppendConversationKeepsContextJourney(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()
	journey := sampleJourney("Bath")

	require.NoError(t, s.AppendConversation(ctx, "a@example.com", "take the M4", &journey))

	data := s.Load(ctx, "a@example.com")
	require.Len(t, data.Conversations, 1)
	require.NotNil(t, data.Conversations[0].ContextJourney)
	assert.Equal(t, "Bath", data.Conversations[0].ContextJourney.Destination)
}

func TestUserDataStore_ListJourneysDesc(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()

	stamps := []string{
		"2026-01-02T10:00:00Z",
		"2026-01-01T10:00:00Z",
		"2026-01-03T10:00:00Z",
	}
	i := 0
	s.now = func() time.Time {
		ts, _ := time.Parse(time.RFC3339, stamps[i])
		i++
		return ts
	}

	for n := 0; n < len(stamps); n++ {
		require.NoError(t, s.AppendJourney(ctx, "a@example.com", sampleJourney(fmt.Sprintf("dest-%d", n))))
	}

	journeys := s.ListJourneysDesc(ctx, "a@example.com")
	require.Len(t, journeys, 3)
	assert.Equal(t, "dest-2", journeys[0].Data.Destination)
	assert.Equal(t, "dest-0", journeys[1].Data.Destination)
	assert.Equal(t, "dest-1", journeys[2].Data.Destination)
}

func TestUserDataStore_ClearEmptiesOnlyThatUser(t *testing.T) {
	s := emptyUserDataStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendJourney(ctx, "a@example.com", sampleJourney("Leeds")))
	require.NoError(t, s.AppendConversation(ctx, "a@example.com", "hi", nil))
	require.NoError(t, s.AppendJourney(ctx, "b@example.com", sampleJourney("Hull")))

	require.NoError(t, s.Clear(ctx, "a@example.com"))

	a := s.Load(ctx, "a@example.com")
	assert.Empty(t, a.Journeys)
	assert.Empty(t, a.Conversations)

	b := s.Load(ctx, "b@example.com")
	assert.Len(t, b.Journeys, 1)
}

func TestUserDataStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewUserDataStore(storage.NewLocalFileProvider(dir), testLogger())
	require.NoError(t, first.AppendJourney(ctx, "a@example.com", sampleJourney("Bristol")))

	second := NewUserDataStore(storage.NewLocalFileProvider(dir), testLogger())
	data := second.Load(ctx, "a@example.com")
	require.Len(t, data.Journeys, 1)
	assert.Equal(t, "Bristol", data.Journeys[0].Data.Destination)
}
