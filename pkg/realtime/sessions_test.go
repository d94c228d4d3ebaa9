package realtime

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestNewSessionStore(t *testing.T) {
	s := NewSessionStore[string]()
	if s == nil {
		t.Fatal("NewSessionStore returned nil")
	}
}

func TestSessionStore_PutGet(t *testing.T) {
	s := NewSessionStore[string]()
	s.Put("s1", "state1")
	sess, ok := s.Get("s1")
	if !ok {
		t.Fatal("Get returned false for existing session")
	}
	if sess.ID != "s1" {
		t.Errorf("session ID %q, want s1", sess.ID)
	}
	if sess.State != "state1" {
		t.Errorf("session State %q, want state1", sess.State)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get should return false for missing ID")
	}
}

func TestSessionStore_Publish(t *testing.T) {
	s := NewSessionStore[string]()
	s.Put("s1", "x")
	hub := s.Hub("s1")
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	s.Publish("s1", "ping")
	got := <-sub
	if got != Event("ping") {
		t.Errorf("got %q, want ping", got)
	}
}

func TestSessionStore_RunLoopPublishesAndStops(t *testing.T) {
	s := NewSessionStore[string]()
	s.Put("s1", "x")
	hub := s.Hub("s1")
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	var ticks atomic.Int32
	s.RunLoop("s1", func() string { return "x" }, func(state string, now time.Time) (time.Time, []Event, bool) {
		n := ticks.Add(1)
		if n >= 3 {
			return time.Time{}, []Event{"done"}, true
		}
		return now.Add(5 * time.Millisecond), []Event{"tick"}, false
	})

	deadline := time.After(time.Second)
	var got []Event
	for len(got) < 3 {
		select {
		case event := <-sub:
			got = append(got, event)
		case <-deadline:
			t.Fatalf("timed out, received %v", got)
		}
	}
	if got[len(got)-1] != Event("done") {
		t.Errorf("final event %q, want done (published on the stopping tick)", got[len(got)-1])
	}
}

func TestSessionStore_RunLoopNotDuplicated(t *testing.T) {
	s := NewSessionStore[string]()
	s.Put("s1", "x")

	var ticks atomic.Int32
	tick := func(state string, now time.Time) (time.Time, []Event, bool) {
		ticks.Add(1)
		return now.Add(10 * time.Millisecond), nil, false
	}
	s.RunLoop("s1", func() string { return "x" }, tick)
	s.RunLoop("s1", func() string { return "x" }, tick)

	time.Sleep(25 * time.Millisecond)
	s.StopLoop("s1")
	n := ticks.Load()
	// A duplicated loop would roughly double the tick count.
	if n > 5 {
		t.Errorf("ticks %d, second RunLoop should not start another loop", n)
	}
}

func TestSessionStore_WakeRecomputesEarly(t *testing.T) {
	s := NewSessionStore[string]()
	s.Put("s1", "x")

	var ticks atomic.Int32
	s.RunLoop("s1", func() string { return "x" }, func(state string, now time.Time) (time.Time, []Event, bool) {
		ticks.Add(1)
		return now.Add(time.Hour), nil, false
	})

	time.Sleep(10 * time.Millisecond)
	before := ticks.Load()
	s.Wake("s1")
	time.Sleep(10 * time.Millisecond)
	after := ticks.Load()
	s.StopLoop("s1")
	if after <= before {
		t.Errorf("ticks before=%d after=%d, Wake should trigger a recompute", before, after)
	}
}

func TestSessionStore_Wake_NoPanicWhenNoLoop(t *testing.T) {
	s := NewSessionStore[string]()
	s.Wake("nonexistent")
}
