package realtime

import "sync"

// Event is a named update published to a session's subscribers, e.g. "frame"
// or "scores". Subscribers decide per event what to re-render or push.
type Event string

// Hub fans events out to the SSE and websocket subscribers of one session.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a subscriber and returns its event channel. On a closed
// hub the returned channel is already closed.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	if h.closed {
		close(ch)
	} else {
		h.subs[ch] = struct{}{}
	}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish delivers an event to all subscribers. A subscriber whose buffer is
// full misses the event; the next one catches it up.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	h.mu.Unlock()
}

// Close drops all subscribers and closes their channels. Subsequent Publish
// calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		for ch := range h.subs {
			delete(h.subs, ch)
			close(ch)
		}
	}
	h.mu.Unlock()
}
