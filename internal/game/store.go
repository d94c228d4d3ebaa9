package game

import (
	"time"

	"slapdown/pkg/realtime"
)

// Store holds matches and delegates to realtime.SessionStore for lookup,
// broadcast, and the per-match timing loop.
type Store struct {
	s *realtime.SessionStore[*Match]
}

// NewStore creates an in-memory match store.
func NewStore() *Store {
	return &Store{s: realtime.NewSessionStore[*Match]()}
}

// CreateMatch initializes a match and registers its hub.
func (s *Store) CreateMatch(target int) *Match {
	m := NewMatch(target)
	s.s.Put(m.ID, m)
	return m
}

// GetMatch returns a match by ID if it exists.
func (s *Store) GetMatch(id string) (*Match, bool) {
	sess, ok := s.s.Get(id)
	if !ok {
		return nil, false
	}
	return sess.State, ok
}

// Hub returns the event hub for a match, creating it if missing.
func (s *Store) Hub(id string) *realtime.Hub {
	return s.s.Hub(id)
}

// Publish notifies subscribers of a match update.
func (s *Store) Publish(id string, event realtime.Event) {
	s.s.Publish(id, event)
}

// EnsureLoop starts the timing loop for a match if not already running. The
// loop drives power-meter ticks and the delayed CPU slap, and exits when the
// match goes idle or finished.
func (s *Store) EnsureLoop(id string) {
	getState := func() *Match {
		sess, ok := s.s.Get(id)
		if !ok {
			return nil
		}
		return sess.State
	}
	tick := func(m *Match, now time.Time) (time.Time, []realtime.Event, bool) {
		if m == nil {
			return time.Time{}, nil, true
		}
		events := m.Tick(now)
		next, ok := m.NextTimer(now)
		if !ok {
			return time.Time{}, events, true
		}
		return next, events, false
	}
	s.s.RunLoop(id, getState, tick)
}

// Wake unblocks the match loop so it recomputes, e.g. after a handler
// transitioned the turn.
func (s *Store) Wake(id string) {
	s.s.Wake(id)
}
