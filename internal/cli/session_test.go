package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_AddExchange(t *testing.T) {
	s := &session{}
	s.AddExchange("where to?", "try Lisbon")

	assert.Equal(t, []string{"User: where to?", "Assistant: try Lisbon"}, s.Lines())
}

func TestSession_CapDropsOldestLines(t *testing.T) {
	s := &session{}
	for i := 0; i < 12; i++ {
		s.AddExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	lines := s.Lines()
	assert.Len(t, lines, maxSessionLines)
	assert.Equal(t, "User: q2", lines[0])
	assert.Equal(t, "Assistant: a11", lines[len(lines)-1])
}
