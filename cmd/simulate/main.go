// Command simulate plays headless matches with a scripted player and prints
// outcome statistics, for tuning damage and timing without a browser.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"slapdown/internal/game"
)

var (
	matches = flag.Int("matches", 1000, "number of matches to play")
	target  = flag.Int("target", game.DefaultTarget, "damage total that ends a match")
	aim     = flag.Float64("aim", 80, "power the scripted player aims for")
	jitter  = flag.Float64("jitter", 20, "random spread around the aimed power")
	seed    = flag.Int64("seed", 0, "seed for the scripted player (0 = time-based)")
)

func main() {
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	var playerWins, cpuWins, totalTurns int
	for i := 0; i < *matches; i++ {
		winner, turns := playMatch(rng)
		totalTurns += turns
		switch winner {
		case game.ActorPlayer:
			playerWins++
		case game.ActorCPU:
			cpuWins++
		}
	}

	fmt.Printf("matches: %d (seed %d)\n", *matches, s)
	fmt.Printf("player wins: %d (%.1f%%)\n", playerWins, percent(playerWins, *matches))
	fmt.Printf("cpu wins:    %d (%.1f%%)\n", cpuWins, percent(cpuWins, *matches))
	fmt.Printf("avg turns:   %.1f\n", float64(totalTurns)/float64(*matches))
}

// playMatch drives one match through the same operations the HTTP handlers
// call, on a synthetic clock.
func playMatch(rng *rand.Rand) (winner string, turns int) {
	now := time.Unix(0, 0).UTC()
	m := game.NewMatch(*target)
	m.Start(now)

	for {
		snapshot := m.Snapshot(now)
		switch {
		case snapshot.Status == game.StatusFinished:
			return snapshot.Winner, turns
		case snapshot.Status == game.StatusCharging && snapshot.Slapper == game.ActorPlayer:
			ticks := aimTicks(rng)
			for t := 0; t < ticks; t++ {
				now = now.Add(game.PowerTickInterval)
				m.Tick(now)
			}
			m.RequestSlap(now)
		case snapshot.Status == game.StatusCharging && snapshot.Slapper == game.ActorCPU:
			now = now.Add(game.CPUWindup)
			m.Tick(now)
		case snapshot.Status == game.StatusSlapping:
			m.NotifyImpact(now)
			m.NotifyResolved(now)
			turns++
		default:
			// Idle only happens before Start; nothing else to drive.
			return "", turns
		}
	}
}

// aimTicks converts the aimed power into meter ticks, with jitter, staying
// within the meter's first rising sweep.
func aimTicks(rng *rand.Rand) int {
	power := *aim + (rng.Float64()*2-1)*(*jitter)
	if power < 0 {
		power = 0
	}
	if power > game.PowerMax {
		power = game.PowerMax
	}
	ticks := int(power / game.PowerStep)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
