// Package components renders the live-updating HTML fragments pushed over
// SSE. Components are built directly against the templ runtime so fragments
// and pages share one rendering contract.
package components

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"slapdown/internal/viewmodel"
)

// ArenaFragment renders the two fighters and the turn indicator.
func ArenaFragment(data viewmodel.ArenaFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<div id="arena" class="arena" data-status=%q data-slapper=%q data-state-key=%q>`,
			html.EscapeString(data.Status), html.EscapeString(data.Slapper), html.EscapeString(data.StateKey)); err != nil {
			return err
		}
		if err := fighter(w, "player", "You", data.PlayerTaken, data.Target, data.Slapper == "player" && data.Status != "finished"); err != nil {
			return err
		}
		if err := fighter(w, "cpu", "CPU", data.CPUTaken, data.Target, data.Slapper == "cpu" && data.Status != "finished"); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func fighter(w io.Writer, side, label string, taken, target int, active bool) error {
	class := "fighter " + side
	if active {
		class += " active"
	}
	_, err := fmt.Fprintf(w,
		`<div class=%q><div class="face" data-side=%q></div><div class="name">%s</div><div class="hits">%d / %d</div></div>`,
		class, side, html.EscapeString(label), taken, target)
	return err
}

// ScoresFragment renders the damage totals panel.
func ScoresFragment(data viewmodel.ScoresFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="scores" class="scores"><span class="score player">You: %d</span><span class="target">first to %d loses</span><span class="score cpu">CPU: %d</span></div>`,
			data.PlayerTaken, data.Target, data.CPUTaken)
		return err
	})
}

// OverlayFragment renders the start / game-over overlay. Hidden while a
// battle is running.
func OverlayFragment(data viewmodel.OverlayFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !data.ShowStart {
			_, err := io.WriteString(w, `<div id="overlay" class="overlay hidden"></div>`)
			return err
		}
		heading := "Slapdown"
		button := "Start"
		if data.Status == "finished" {
			heading = html.EscapeString(data.WinnerLabel)
			button = "Rematch"
		}
		_, err := fmt.Fprintf(w,
			`<div id="overlay" class="overlay"><h2>%s</h2><form method="post" action="/match/%s/start"><button type="submit" class="start">%s</button></form></div>`,
			heading, html.EscapeString(data.MatchID), button)
		return err
	})
}

// PowerBar renders the static power meter shell; the websocket client moves
// the fill.
func PowerBar() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w,
			`<div id="power" class="power"><div id="power-fill" class="power-fill"></div></div>`)
		return err
	})
}
