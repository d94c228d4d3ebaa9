package game

import (
	cryptorand "crypto/rand"
	"encoding/base32"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"slapdown/pkg/realtime"
)

// Match phases. Slapper qualifies charging and slapping: charging with the
// player as slapper is the interactive power-aiming phase, charging with the
// CPU as slapper is its wind-up before the delayed auto-slap.
const (
	StatusIdle     = "idle"
	StatusCharging = "charging"
	StatusSlapping = "slapping"
	StatusFinished = "finished"
)

// Actors.
const (
	ActorPlayer = "player"
	ActorCPU    = "cpu"
)

const (
	// DefaultTarget ends the match once either side has taken this much damage.
	DefaultTarget = 10
	// CPUWindup is how long the CPU telegraphs before its auto-slap lands.
	CPUWindup = time.Second
	// MaxDamage caps a single slap for both actors.
	MaxDamage = 5
)

// Events published to match subscribers.
const (
	EventFrame   realtime.Event = "frame"
	EventArena   realtime.Event = "arena"
	EventScores  realtime.Event = "scores"
	EventOverlay realtime.Event = "overlay"
)

// Match holds the state for a single slap battle. All mutation goes through
// the guarded operations below; the session loop and HTTP handlers are the
// only callers, so transitions are atomic per event.
type Match struct {
	mu          sync.Mutex
	ID          string
	CreatedAt   time.Time
	Target      int
	Status      string
	Slapper     string
	PlayerTaken int // damage the player has taken
	CPUTaken    int // damage the CPU has taken
	Meter       PowerMeter
	LockedPower float64

	impactDone bool
	gen        uint64
	cpuSlap    realtime.Delay
	powerTicks realtime.Cadence
	roll       func() int // CPU damage draw, swappable in tests
}

// NewMatch creates an idle match. Target is clamped to [1, 25]; zero means
// the default of 10.
func NewMatch(target int) *Match {
	if target == 0 {
		target = DefaultTarget
	}
	if target < 1 {
		target = 1
	}
	if target > 25 {
		target = 25
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Match{
		ID:         newID(),
		CreatedAt:  time.Now().UTC(),
		Target:     target,
		Status:     StatusIdle,
		Slapper:    ActorPlayer,
		powerTicks: realtime.Cadence{Interval: PowerTickInterval},
		roll:       func() int { return 1 + rng.Intn(MaxDamage) },
	}
}

// Start begins a fresh battle from any phase: scores reset, the player slaps
// first, and the power meter charges from zero. Any pending CPU auto-slap
// belongs to the previous generation and is disarmed.
func (m *Match) Start(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.cpuSlap.Cancel()
	m.PlayerTaken = 0
	m.CPUTaken = 0
	m.LockedPower = 0
	m.impactDone = false
	m.Slapper = ActorPlayer
	m.Status = StatusCharging
	m.Meter.Start()
	m.powerTicks = realtime.Cadence{Interval: PowerTickInterval}
}

// RequestSlap commits the player's slap at the meter's current value. Out of
// turn, or while the meter is not charging, it is a silent no-op and reports
// false.
func (m *Match) RequestSlap(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Status != StatusCharging || m.Slapper != ActorPlayer || !m.Meter.Active {
		return false
	}
	m.LockedPower = m.Meter.Stop()
	m.impactDone = false
	m.Status = StatusSlapping
	return true
}

// NotifyImpact applies the current slap's damage. The presentation layer
// raises it at the moment of contact in its animation; duplicates and calls
// outside the slapping phase are ignored. Reaching the target transitions to
// finished immediately.
func (m *Match) NotifyImpact(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Status != StatusSlapping || m.impactDone {
		return false
	}
	m.impactDone = true
	if m.Slapper == ActorPlayer {
		m.CPUTaken = clampScore(m.CPUTaken+PlayerDamage(m.LockedPower), m.Target)
		if m.CPUTaken >= m.Target {
			m.finishLocked()
		}
	} else {
		m.PlayerTaken = clampScore(m.PlayerTaken+m.roll(), m.Target)
		if m.PlayerTaken >= m.Target {
			m.finishLocked()
		}
	}
	return true
}

// NotifyResolved advances the turn once the slap animation has finished: the
// other actor becomes the slapper. A new player turn restarts the meter from
// zero; a new CPU turn arms the delayed auto-slap. No-op unless the match is
// mid-slap with damage already applied.
func (m *Match) NotifyResolved(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Status != StatusSlapping || !m.impactDone {
		return false
	}
	m.Status = StatusCharging
	if m.Slapper == ActorPlayer {
		m.Slapper = ActorCPU
		m.cpuSlap.Schedule(now.Add(CPUWindup), m.gen)
	} else {
		m.Slapper = ActorPlayer
		m.Meter.Start()
		m.powerTicks.Reset()
	}
	return true
}

// Tick advances time-driven state: one meter step per due cadence tick while
// the player aims, and the CPU auto-slap once its wind-up elapses. Returns
// the events subscribers should see.
func (m *Match) Tick(now time.Time) []realtime.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []realtime.Event
	if m.Status == StatusCharging && m.Slapper == ActorPlayer && m.Meter.Active {
		if m.powerTicks.Due(now) {
			m.Meter.Step()
			m.powerTicks.Mark(now)
			events = append(events, EventFrame)
		}
	}
	if m.fireCPUSlapLocked(now) {
		events = append(events, EventFrame, EventArena)
	}
	return events
}

func (m *Match) fireCPUSlapLocked(now time.Time) bool {
	if m.Status != StatusCharging || m.Slapper != ActorCPU {
		return false
	}
	if !m.cpuSlap.Due(now, m.gen) {
		return false
	}
	m.cpuSlap.Cancel()
	m.impactDone = false
	m.Status = StatusSlapping
	return true
}

func (m *Match) finishLocked() {
	m.Status = StatusFinished
	m.Meter.Active = false
	m.cpuSlap.Cancel()
}

// NextTimer returns the next time-driven wake for the session loop: the
// meter cadence while the player aims, the wind-up deadline while the CPU
// charges, a slow recheck while a slap animation is outstanding. No wake
// while idle or finished.
func (m *Match) NextTimer(now time.Time) (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.Status == StatusCharging && m.Slapper == ActorPlayer && m.Meter.Active:
		return m.powerTicks.Next(now), true
	case m.Status == StatusCharging && m.Slapper == ActorCPU && m.cpuSlap.Active(m.gen):
		return m.cpuSlap.At, true
	case m.Status == StatusSlapping:
		return now.Add(time.Second), true
	}
	return time.Time{}, false
}

// Winner reports who won; empty unless the match is finished.
func (m *Match) Winner() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winnerLocked()
}

func (m *Match) winnerLocked() string {
	if m.Status != StatusFinished {
		return ""
	}
	if m.CPUTaken >= m.Target {
		return ActorPlayer
	}
	if m.PlayerTaken >= m.Target {
		return ActorCPU
	}
	return ""
}

// Snapshot captures a consistent view for rendering, firing any CPU slap
// that came due since the last wake.
type Snapshot struct {
	ID          string
	Status      string
	Slapper     string
	Target      int
	PlayerTaken int
	CPUTaken    int
	Power       float64
	Charging    bool
	LockedPower float64
	Winner      string
	CPUSlapAt   time.Time
}

// Snapshot returns a consistent view of the current match state.
func (m *Match) Snapshot(now time.Time) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fireCPUSlapLocked(now)
	var cpuSlapAt time.Time
	if m.cpuSlap.Active(m.gen) {
		cpuSlapAt = m.cpuSlap.At
	}
	return Snapshot{
		ID:          m.ID,
		Status:      m.Status,
		Slapper:     m.Slapper,
		Target:      m.Target,
		PlayerTaken: m.PlayerTaken,
		CPUTaken:    m.CPUTaken,
		Power:       m.Meter.Value,
		Charging:    m.Meter.Active,
		LockedPower: m.LockedPower,
		Winner:      m.winnerLocked(),
		CPUSlapAt:   cpuSlapAt,
	}
}

// PlayerDamage maps locked power to slap damage: one point per started 20
// power, never below 1 so a mistimed slap still lands, capped at MaxDamage.
func PlayerDamage(locked float64) int {
	damage := int(math.Ceil(locked / 20))
	if damage < 1 {
		damage = 1
	}
	if damage > MaxDamage {
		damage = MaxDamage
	}
	return damage
}

func clampScore(score, target int) int {
	if score > target {
		return target
	}
	return score
}

func newID() string {
	// 10 bytes -> 16 chars of base32, short and url-safe.
	buf := make([]byte, 10)
	_, _ = cryptorand.Read(buf)
	encoder := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(encoder.EncodeToString(buf))
}
