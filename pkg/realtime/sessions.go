package realtime

import (
	"context"
	"sync"
	"time"
)

// Session pairs state with the hub its subscribers listen on.
type Session[T any] struct {
	ID    string
	State T
	hub   *Hub
}

// SessionStore manages sessions, their hubs, and their timing loops.
type SessionStore[T any] struct {
	mu       sync.RWMutex
	sessions map[string]*Session[T]
	cancels  map[string]context.CancelFunc
	wakes    map[string]chan struct{}
}

// NewSessionStore creates an empty store.
func NewSessionStore[T any]() *SessionStore[T] {
	return &SessionStore[T]{
		sessions: make(map[string]*Session[T]),
		cancels:  make(map[string]context.CancelFunc),
		wakes:    make(map[string]chan struct{}),
	}
}

// Put registers a session under id with a fresh hub.
func (s *SessionStore[T]) Put(id string, state T) *Session[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session[T]{ID: id, State: state, hub: NewHub()}
	s.sessions[id] = sess
	return sess
}

// Get returns the session by ID if it exists.
func (s *SessionStore[T]) Get(id string) (*Session[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Hub returns the session's hub, creating a hub-only session if needed so
// subscribers can attach before state exists.
func (s *SessionStore[T]) Hub(id string) *Hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session[T]{ID: id, hub: NewHub()}
		s.sessions[id] = sess
	}
	if sess.hub == nil {
		sess.hub = NewHub()
	}
	return sess.hub
}

// Publish delivers an event to the session's subscribers.
func (s *SessionStore[T]) Publish(id string, event Event) {
	s.Hub(id).Publish(event)
}

// TickFunc runs at every loop wake. It mutates state as needed and returns
// the next wake time, events to publish now, and done=true to end the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []Event, done bool)

// RunLoop starts the session's timing loop if one is not already running.
// Events returned by tick are published immediately, including on the final
// tick, so subscribers see the state that ended the loop.
func (s *SessionStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T]) {
	s.mu.Lock()
	if _, ok := s.cancels[id]; ok {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	wake := make(chan struct{}, 1)
	s.cancels[id] = cancel
	s.wakes[id] = wake
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.cancels, id)
			delete(s.wakes, id)
			s.mu.Unlock()
		}()

		for {
			next, events, done := tick(getState(), time.Now().UTC())
			for _, event := range events {
				s.Publish(id, event)
			}
			if done {
				return
			}
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			case <-wake:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
		}
	}()
}

// Wake unblocks the session's loop so it recomputes immediately, e.g. after
// a handler mutated state out of band.
func (s *SessionStore[T]) Wake(id string) {
	s.mu.RLock()
	wake, ok := s.wakes[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case wake <- struct{}{}:
	default:
	}
}

// StopLoop cancels the session's loop if one is running.
func (s *SessionStore[T]) StopLoop(id string) {
	s.mu.RLock()
	cancel, ok := s.cancels[id]
	s.mu.RUnlock()
	if ok {
		cancel()
	}
}
