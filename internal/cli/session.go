package cli

import "fmt"

// maxSessionLines caps the in-memory conversation carried between turns of
// one chat session. This is separate from the persisted conversation
// history and resets when the session ends.
const maxSessionLines = 20

// session holds one chat session's rolling transcript.
type session struct {
	lines []string
}

// AddExchange appends a user/assistant pair, dropping the oldest lines once
// the cap is exceeded.
func (s *session) AddExchange(question, reply string) {
	s.lines = append(s.lines,
		fmt.Sprintf("User: %s", question),
		fmt.Sprintf("Assistant: %s", reply))
	if len(s.lines) > maxSessionLines {
		s.lines = s.lines[len(s.lines)-maxSessionLines:]
	}
}

// Lines returns the transcript, oldest first.
func (s *session) Lines() []string {
	return s.lines
}
