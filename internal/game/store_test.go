package game

import (
	"testing"
	"time"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	if s == nil {
		t.Fatal("NewStore returned nil")
	}
}

func TestStore_CreateGet(t *testing.T) {
	s := NewStore()
	m := s.CreateMatch(10)
	got, ok := s.GetMatch(m.ID)
	if !ok {
		t.Fatal("GetMatch returned false for existing match")
	}
	if got != m {
		t.Error("GetMatch returned a different match")
	}
	if _, ok := s.GetMatch("nonexistent"); ok {
		t.Error("GetMatch should return false for missing ID")
	}
}

func TestStore_Publish(t *testing.T) {
	s := NewStore()
	m := s.CreateMatch(10)
	hub := s.Hub(m.ID)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	s.Publish(m.ID, EventScores)
	got := <-sub
	if got != EventScores {
		t.Errorf("got %q, want %q", got, EventScores)
	}
}

func TestStore_LoopDrivesPowerMeter(t *testing.T) {
	s := NewStore()
	m := s.CreateMatch(10)
	m.Start(time.Now().UTC())

	hub := s.Hub(m.ID)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	s.EnsureLoop(m.ID)

	select {
	case event := <-sub:
		if event != EventFrame {
			t.Errorf("first loop event %q, want %q", event, EventFrame)
		}
	case <-time.After(time.Second):
		t.Fatal("loop published no frame events")
	}

	// A few cadence intervals later the meter has moved.
	time.Sleep(4 * PowerTickInterval)
	snap := m.Snapshot(time.Now().UTC())
	if snap.Power <= 0 {
		t.Errorf("Power %v, want > 0 after loop ticks", snap.Power)
	}
}

func TestStore_Wake_NoPanicWhenNoLoop(t *testing.T) {
	s := NewStore()
	s.Wake("nonexistent")
}
