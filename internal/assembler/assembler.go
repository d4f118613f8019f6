// Package assembler builds the prompt text sent to the chat model. Assembly
// is deterministic: the same inputs always produce the same prompt.
package assembler

import (
	"fmt"
	"strings"
	"time"

	"github.com/tmalloy/wayfarer/internal/store"
)

const systemPreamble = `You are an expert travel assistant with access to real-time journey data and user history.
        You have detailed knowledge of:
        - Travel routes, transportation options, and traffic patterns
        - Local attractions, restaurants, and accommodations
        - Weather conditions and seasonal travel tips
        - Budget planning and cost-effective travel options
        - Cultural insights and local customs
        - Safety tips and travel advisories

        Provide helpful, accurate, and personalized travel advice based on the user's location data and journey history.
        Be conversational, friendly, and specific in your recommendations. Use the journey data to give contextual advice.`

const closingInstruction = "\nYour response should be helpful, specific, and based on the travel data provided above:"

const (
	// historyJourneys is how many stored journeys the prompt summarizes.
	historyJourneys = 10

	// historyLines is how many conversation lines the prompt carries over.
	historyLines = 6
)

// Build assembles the full prompt for one chat turn. Blocks appear in a
// fixed order: preamble, most recent journey, journey history summary,
// conversation context, the question, closing instruction. Empty inputs
// simply omit their block. Field values are inserted verbatim; nothing is
// escaped or truncated.
func Build(question string, conversationHistory []string, userData store.UserProfileData, mostRecentJourney *store.Journey) string {
	parts := []string{systemPreamble}

	if mostRecentJourney != nil {
		parts = append(parts, recentJourneyBlock(mostRecentJourney))
	}

	if len(userData.Journeys) > 0 {
		parts = append(parts, journeyHistoryBlock(userData.Journeys))
	}

	if len(conversationHistory) > 0 {
		parts = append(parts, "\nPREVIOUS CONVERSATION CONTEXT:")
		recent := conversationHistory
		if len(recent) > historyLines {
			recent = recent[len(recent)-historyLines:]
		}
		parts = append(parts, recent...)
	}

	parts = append(parts, fmt.Sprintf("\nCURRENT USER QUESTION: %s", question))
	parts = append(parts, closingInstruction)

	return strings.Join(parts, "\n")
}

func recentJourneyBlock(j *store.Journey) string {
	traffic := j.DurationInTraffic
	if traffic == "" {
		traffic = "N/A"
	}
	return fmt.Sprintf(`
MOST RECENT JOURNEY:
- Origin: %s
- Destination: %s
- Travel Mode: %s
- Duration: %s
- Distance: %s
- Traffic Duration: %s

Use this journey information to provide relevant travel advice, alternative routes, nearby attractions,
dining options, or any other contextual recommendations.`,
		orUnknown(j.Origin), orUnknown(j.Destination), orUnknown(j.Mode),
		orUnknown(j.Duration), orUnknown(j.Distance), traffic)
}

// journeyHistoryBlock summarizes the last historyJourneys records in stored
// order, oldest of the slice first. Records are not re-sorted here.
func journeyHistoryBlock(journeys []store.JourneyRecord) string {
	recent := journeys
	if len(recent) > historyJourneys {
		recent = recent[len(recent)-historyJourneys:]
	}

	var b strings.Builder
	b.WriteString("\nUSER'S RECENT JOURNEY HISTORY:\n")
	for i, record := range recent {
		b.WriteString(fmt.Sprintf("%d. %s: %s → %s (%s, %s)\n",
			i+1,
			formatTimestamp(record.Timestamp),
			orUnknown(record.Data.Origin),
			orUnknown(record.Data.Destination),
			orDefault(record.Data.Mode, "unknown"),
			orDefault(record.Data.Duration, "Unknown duration")))
	}
	b.WriteString("\nUse this travel pattern to suggest personalized recommendations, ")
	b.WriteString("identify frequent routes, suggest optimizations, or recommend new destinations.")
	return b.String()
}

// formatTimestamp renders an RFC3339 timestamp as "2006-01-02 15:04". On
// parse failure it falls back to the raw first 16 characters; an empty
// timestamp becomes "Unknown time".
func formatTimestamp(ts string) string {
	if ts == "" {
		return "Unknown time"
	}
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) > 16 {
			return ts[:16]
		}
		return ts
	}
	return parsed.Format("2006-01-02 15:04")
}

func orUnknown(s string) string {
	return orDefault(s, "Unknown")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
