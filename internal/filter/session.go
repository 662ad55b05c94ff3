package filter

import (
	"sync"
	"time"

	"github.com/Eringolaw/fdic-bank-explorer/pkg/contracts/domain"
)

// Session owns one client's selection and applies events serially. The
// reducer itself is pure; the session adds the mutex and the monotonically
// increasing sequence number that orders snapshots on the wire.
type Session struct {
	mu        sync.RWMutex
	state     domain.FilterState
	sequence  uint64
	updatedAt time.Time
}

// NewSession returns a session holding the zero selection.
func NewSession() *Session {
	return &Session{updatedAt: time.Now()}
}

// State returns the current selection.
func (s *Session) State() domain.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Sequence returns the number of events applied so far.
func (s *Session) Sequence() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sequence
}

// UpdatedAt returns when the last event was applied.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Apply runs one event through the reducer and returns the new selection
// together with its sequence number.
func (s *Session) Apply(ev Event) (domain.FilterState, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, ev)
	s.sequence++
	s.updatedAt = time.Now()
	return s.state, s.sequence
}
