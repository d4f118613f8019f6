// Package store persists the application's user-facing data: the profile
// registry, the OAuth token and per-user journey/conversation history. All
// stores write through a storage.FileProvider so the backing location (local
// directory or S3 bucket) is a wiring decision.
package store

// UserIdentity is one authenticated user as recorded in the profile
// registry. Identities are write-once; email is the registry key.
type UserIdentity struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Step is one instruction of a journey, 1-based.
type Step struct {
	Step        int    `json:"step"`
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
}

// Journey is one completed route lookup. Immutable once created.
type Journey struct {
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	Mode              string `json:"mode"`
	Duration          string `json:"duration"`
	Distance          string `json:"distance"`
	DurationInTraffic string `json:"duration_in_traffic"`
	Steps             []Step `json:"steps"`
}

// JourneyRecord is a Journey plus its creation timestamp, as stored.
type JourneyRecord struct {
	Timestamp string  `json:"timestamp"`
	Data      Journey `json:"data"`
}

// ConversationRecord is one persisted AI exchange. ContextJourney is the
// journey that was active when the exchange happened, if any.
type ConversationRecord struct {
	Timestamp      string   `json:"timestamp"`
	AIResponse     string   `json:"ai_response"`
	ContextJourney *Journey `json:"context_journey,omitempty"`
}

// UserProfileData is everything stored for one user.
type UserProfileData struct {
	Journeys      []JourneyRecord      `json:"journeys"`
	Conversations []ConversationRecord `json:"conversations"`
	Preferences   map[string]any       `json:"preferences"`
}

// NewUserProfileData returns an empty but fully initialized structure, the
// fallback for users with no prior data or an unreadable backing file.
func NewUserProfileData() UserProfileData {
	return UserProfileData{
		Journeys:      []JourneyRecord{},
		Conversations: []ConversationRecord{},
		Preferences:   map[string]any{},
	}
}

const (
	// MaxJourneys caps each user's journey list; oldest entries are
	// dropped first.
	MaxJourneys = 100

	// MaxConversations caps each user's conversation list.
	MaxConversations = 50
)
