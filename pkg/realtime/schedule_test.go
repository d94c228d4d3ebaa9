package realtime

import (
	"testing"
	"time"
)

func TestDelay_ScheduleAndDue(t *testing.T) {
	now := time.Now().UTC()
	var d Delay
	if d.Active(1) {
		t.Error("zero delay should be inactive")
	}
	d.Schedule(now.Add(time.Second), 1)
	if !d.Active(1) {
		t.Error("delay should be active for its generation")
	}
	if d.Due(now, 1) {
		t.Error("delay should not be due before its deadline")
	}
	if !d.Due(now.Add(time.Second), 1) {
		t.Error("delay should be due at its deadline")
	}
}

func TestDelay_GenerationOrphans(t *testing.T) {
	now := time.Now().UTC()
	var d Delay
	d.Schedule(now, 1)
	if d.Active(2) {
		t.Error("bumped generation should orphan the delay")
	}
	if d.Due(now.Add(time.Minute), 2) {
		t.Error("orphaned delay must never be due")
	}
}

func TestDelay_Cancel(t *testing.T) {
	now := time.Now().UTC()
	var d Delay
	d.Schedule(now, 3)
	d.Cancel()
	if d.Active(3) {
		t.Error("cancelled delay should be inactive")
	}
}

func TestCadence_DueImmediatelyWhenFresh(t *testing.T) {
	now := time.Now().UTC()
	c := Cadence{Interval: 50 * time.Millisecond}
	if !c.Due(now) {
		t.Error("fresh cadence should be due")
	}
	if got := c.Next(now); !got.Equal(now) {
		t.Errorf("Next %v, want now", got)
	}
}

func TestCadence_MarkGatesNextTick(t *testing.T) {
	now := time.Now().UTC()
	c := Cadence{Interval: 50 * time.Millisecond}
	c.Mark(now)
	if c.Due(now.Add(10 * time.Millisecond)) {
		t.Error("cadence should not be due inside the interval")
	}
	if !c.Due(now.Add(50 * time.Millisecond)) {
		t.Error("cadence should be due at the interval")
	}
	want := now.Add(50 * time.Millisecond)
	if got := c.Next(now.Add(10 * time.Millisecond)); !got.Equal(want) {
		t.Errorf("Next %v, want %v", got, want)
	}
}

func TestCadence_BehindIsDueNow(t *testing.T) {
	now := time.Now().UTC()
	c := Cadence{Interval: 50 * time.Millisecond}
	c.Mark(now.Add(-time.Second))
	late := now
	if got := c.Next(late); !got.Equal(late) {
		t.Errorf("Next %v, want now for a cadence that fell behind", got)
	}
}

func TestCadence_Reset(t *testing.T) {
	now := time.Now().UTC()
	c := Cadence{Interval: 50 * time.Millisecond}
	c.Mark(now)
	c.Reset()
	if !c.Due(now) {
		t.Error("reset cadence should be due immediately")
	}
}
