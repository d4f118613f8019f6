package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tmalloy/wayfarer/internal/storage"
	"github.com/tmalloy/wayfarer/pkg/logger"
)

const userDataPath = "user_data.json"

// UserDataStore persists per-user journey and conversation history. The
// backing file is one JSON object keyed by email; every mutation rewrites
// the whole file. Reads never fail: a missing or corrupt file degrades to an
// empty structure.
type UserDataStore struct {
	provider  storage.FileProvider
	userLocks map[string]*sync.Mutex
	lockMux   sync.Mutex
	now       func() time.Time
	log       logger.Logger
}

// NewUserDataStore creates a store backed by the given provider.
func NewUserDataStore(provider storage.FileProvider, log logger.Logger) *UserDataStore {
	if provider == nil {
		panic("file provider cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}
	return &UserDataStore{
		provider:  provider,
		userLocks: make(map[string]*sync.Mutex),
		now:       time.Now,
		log:       log,
	}
}

// Load returns the stored data for email. Users without prior data, and any
// read or parse failure, yield an empty initialized structure; errors are
// logged, never returned.
func (s *UserDataStore) Load(ctx context.Context, email string) UserProfileData {
	all := s.loadAll(ctx)
	data, ok := all[email]
	if !ok {
		return NewUserProfileData()
	}
	if data.Journeys == nil {
		data.Journeys = []JourneyRecord{}
	}
	if data.Conversations == nil {
		data.Conversations = []ConversationRecord{}
	}
	if data.Preferences == nil {
		data.Preferences = map[string]any{}
	}
	return data
}

// AppendJourney records a route lookup for the user, timestamped now,
// truncating to the most recent MaxJourneys and persisting the full data set.
func (s *UserDataStore) AppendJourney(ctx context.Context, email string, journey Journey) error {
	lock := s.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	all := s.loadAll(ctx)
	data := orInitialized(all[email])

	data.Journeys = append(data.Journeys, JourneyRecord{
		Timestamp: s.now().Format(time.RFC3339),
		Data:      journey,
	})
	if len(data.Journeys) > MaxJourneys {
		data.Journeys = data.Journeys[len(data.Journeys)-MaxJourneys:]
	}

	all[email] = data
	return s.saveAll(ctx, all)
}

// AppendConversation records an AI exchange for the user, cap
// MaxConversations, oldest dropped first.
func (s *UserDataStore) AppendConversation(ctx context.Context, email, reply string, contextJourney *Journey) error {
	lock := s.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	all := s.loadAll(ctx)
	data := orInitialized(all[email])

	data.Conversations = append(data.Conversations, ConversationRecord{
		Timestamp:      s.now().Format(time.RFC3339),
		AIResponse:     reply,
		ContextJourney: contextJourney,
	})
	if len(data.Conversations) > MaxConversations {
		data.Conversations = data.Conversations[len(data.Conversations)-MaxConversations:]
	}

	all[email] = data
	return s.saveAll(ctx, all)
}

// ListJourneysDesc returns the user's journeys ordered by timestamp
// descending. The sort is stable on the timestamp string: append order and
// timestamp order are not guaranteed to coincide.
func (s *UserDataStore) ListJourneysDesc(ctx context.Context, email string) []JourneyRecord {
	data := s.Load(ctx, email)

	journeys := make([]JourneyRecord, len(data.Journeys))
	copy(journeys, data.Journeys)
	sort.SliceStable(journeys, func(i, j int) bool {
		return journeys[i].Timestamp > journeys[j].Timestamp
	})
	return journeys
}

// Clear empties both history lists for the user and persists.
func (s *UserDataStore) Clear(ctx context.Context, email string) error {
	lock := s.userLock(email)
	lock.Lock()
	defer lock.Unlock()

	all := s.loadAll(ctx)
	data := orInitialized(all[email])
	data.Journeys = []JourneyRecord{}
	data.Conversations = []ConversationRecord{}
	all[email] = data
	return s.saveAll(ctx, all)
}

// loadAll reads the whole multi-user file, degrading to an empty map on any
// failure.
func (s *UserDataStore) loadAll(ctx context.Context) map[string]UserProfileData {
	data, err := s.provider.Read(ctx, userDataPath)
	if err != nil {
		s.log.Debug("No user data file, starting empty", logger.ErrorField(err))
		return map[string]UserProfileData{}
	}

	var all map[string]UserProfileData
	if err := json.Unmarshal(data, &all); err != nil {
		s.log.Warn("Corrupt user data file, starting empty", logger.ErrorField(err))
		return map[string]UserProfileData{}
	}
	if all == nil {
		all = map[string]UserProfileData{}
	}
	return all
}

func (s *UserDataStore) saveAll(ctx context.Context, all map[string]UserProfileData) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user data: %w", err)
	}
	if err := s.provider.Write(ctx, userDataPath, data); err != nil {
		return fmt.Errorf("failed to write user data: %w", err)
	}
	return nil
}

func (s *UserDataStore) userLock(email string) *sync.Mutex {
	s.lockMux.Lock()
	defer s.lockMux.Unlock()

	if lock, exists := s.userLocks[email]; exists {
		return lock
	}
	lock := &sync.Mutex{}
	s.userLocks[email] = lock
	return lock
}

func orInitialized(data UserProfileData) UserProfileData {
	if data.Journeys == nil {
		data.Journeys = []JourneyRecord{}
	}
	if data.Conversations == nil {
		data.Conversations = []ConversationRecord{}
	}
	if data.Preferences == nil {
		data.Preferences = map[string]any{}
	}
	return data
}
