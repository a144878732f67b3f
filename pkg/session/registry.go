// Package session isolates chat state per browser session. Every session owns
// its own transcript and Turn Controller; nothing is shared between sessions
// and nothing outlives the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/babybot/pkg/chat"
)

// DefaultIdleTimeout is how long an untouched session is kept before Sweep evicts it.
const DefaultIdleTimeout = 2 * time.Hour

// Session is one isolated conversation.
type Session struct {
	ID         string
	Controller *chat.Controller
	CreatedAt  time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen returns when the session was last resolved from the registry.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// ControllerFactory builds a fresh controller, with its own transcript, for a new session.
type ControllerFactory func() *chat.Controller

// Option configures a Registry.
type Option func(*Registry)

// WithIdleTimeout overrides DefaultIdleTimeout.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.idleTimeout = d
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// Registry is an in-memory map of sessions keyed by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	factory     ControllerFactory
	idleTimeout time.Duration
	now         func() time.Time
}

// NewRegistry creates an empty Registry.
func NewRegistry(factory ControllerFactory, opts ...Option) *Registry {
	r := &Registry{
		sessions:    make(map[string]*Session),
		factory:     factory,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create starts a new session with a random id.
func (r *Registry) Create() *Session {
	now := r.now()
	s := &Session{
		ID:         uuid.NewString(),
		Controller: r.factory(),
		CreatedAt:  now,
		lastSeen:   now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	return s
}

// Get returns the session for id and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}

	s.touch(r.now())
	return s, true
}

// GetOrCreate returns the session for id, or a new session when id is empty,
// malformed or unknown. The returned session's ID may differ from id.
func (r *Registry) GetOrCreate(id string) *Session {
	if _, err := uuid.Parse(id); err == nil {
		if s, ok := r.Get(id); ok {
			return s
		}
	}
	return r.Create()
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the idle timeout and returns how
// many were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
