package realtime

import "time"

// Delay is a cancellable one-shot deadline tagged with the generation of the
// session that scheduled it. Bumping the generation orphans the deadline, so
// a wake that races a session restart finds nothing due and cannot act on the
// restarted session's behalf.
type Delay struct {
	At  time.Time
	Gen uint64
}

// Schedule arms the delay for the given generation.
func (d *Delay) Schedule(at time.Time, gen uint64) {
	d.At = at
	d.Gen = gen
}

// Cancel disarms the delay.
func (d *Delay) Cancel() {
	*d = Delay{}
}

// Active reports whether the delay is armed for the given generation.
func (d *Delay) Active(gen uint64) bool {
	return !d.At.IsZero() && d.Gen == gen
}

// Due reports whether the delay is armed for gen and its deadline has passed.
func (d *Delay) Due(now time.Time, gen uint64) bool {
	return d.Active(gen) && !now.Before(d.At)
}

// Cadence tracks a fixed-interval tick schedule. A cadence that has never
// ticked, or that has fallen behind, is due immediately; it does not try to
// replay missed ticks.
type Cadence struct {
	Interval time.Duration
	LastTick time.Time
}

// Next returns the deadline for the upcoming tick.
func (c *Cadence) Next(now time.Time) time.Time {
	if c.LastTick.IsZero() {
		return now
	}
	next := c.LastTick.Add(c.Interval)
	if next.Before(now) {
		return now
	}
	return next
}

// Due reports whether a tick should fire at now.
func (c *Cadence) Due(now time.Time) bool {
	return c.LastTick.IsZero() || !now.Before(c.LastTick.Add(c.Interval))
}

// Mark records a completed tick.
func (c *Cadence) Mark(now time.Time) {
	c.LastTick = now
}

// Reset forgets tick history so the next Due fires immediately.
func (c *Cadence) Reset() {
	c.LastTick = time.Time{}
}
