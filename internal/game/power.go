package game

import "time"

// Power meter tuning.
const (
	PowerMax  = 100.0
	PowerStep = 2.0
	// PowerTickInterval is the cadence at which the meter advances while the
	// player is aiming. One full 0->100 sweep takes 2.5s.
	PowerTickInterval = 50 * time.Millisecond
)

// PowerMeter is the ping-pong charge waveform the player times a slap
// against. It is a pure function of tick count and direction; ticking while
// inactive is a no-op, so the value frozen by Stop is exactly the value at
// the instant the slap was committed.
type PowerMeter struct {
	Value     float64
	Direction int // +1 rising, -1 falling
	Active    bool
}

// Start resets the meter to zero, rising, and activates it.
func (p *PowerMeter) Start() {
	p.Value = 0
	p.Direction = 1
	p.Active = true
}

// Stop deactivates the meter and returns the locked value.
func (p *PowerMeter) Stop() float64 {
	p.Active = false
	return p.Value
}

// Step advances the meter one tick, clamping to [0, PowerMax] and reversing
// direction at either bound.
func (p *PowerMeter) Step() {
	if !p.Active {
		return
	}
	if p.Direction == 0 {
		p.Direction = 1
	}
	p.Value += PowerStep * float64(p.Direction)
	if p.Value >= PowerMax {
		p.Value = PowerMax
		p.Direction = -1
	} else if p.Value <= 0 {
		p.Value = 0
		p.Direction = 1
	}
}
