// Package transcript holds the ordered history of conversation turns for a
// single chat session.
package transcript

import (
	"strings"
	"sync"
)

// Turn is one user input paired with the generated reply.
type Turn struct {
	UserText string `json:"user"`
	BotText  string `json:"bot"`
}

// Store is an append-only sequence of turns that can only be emptied as a whole.
// All methods are safe for concurrent use and observers never see a
// partially applied Append or Clear.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a turn to the end of the transcript.
func (s *Store) Append(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
}

// Clear empties the transcript.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = nil
}

// Len returns the number of turns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.turns)
}

// Turns returns a snapshot of the transcript in conversation order.
// The returned slice does not alias the store.
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Render produces the display form of the transcript: one
// "User: ...\nBot: ..." block per turn, separated by a blank line.
func (s *Store) Render() string {
	return Render(s.Turns())
}

// Render formats a transcript snapshot the same way Store.Render does.
func Render(turns []Turn) string {
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("User: ")
		b.WriteString(t.UserText)
		b.WriteString("\nBot: ")
		b.WriteString(t.BotText)
	}
	return b.String()
}
