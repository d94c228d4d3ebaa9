// Package pages renders the full HTML documents.
package pages

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"slapdown/internal/viewmodel"
	"slapdown/views/components"
)

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><link rel="stylesheet" href="/static/style.css"></head><body>`,
			html.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// HomePage renders the landing page with the create-match form.
func HomePage(data viewmodel.HomePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<main class="home"><h1>%s</h1><p>Time your slap. Don't get slapped.</p><form method="post" action="/matches"><label for="target">Knockout at</label><select id="target" name="target">`,
			html.EscapeString(data.Title)); err != nil {
			return err
		}
		for _, target := range data.Targets {
			selected := ""
			if target == data.DefaultTarget {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%d"%s>%d damage</option>`, target, selected, target); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w,
			`</select><button type="submit">New match</button></form></main>`)
		return err
	})
	return layout(data.Title, body)
}

// MatchPage renders the match page shell; the fragments inside it are
// replaced over SSE and the power bar is driven over the websocket.
func MatchPage(data viewmodel.MatchPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<main class="match" data-match-id=%q><header><h1>%s</h1><span class="invite">%s</span></header>`,
			html.EscapeString(data.MatchID), html.EscapeString(data.Title), html.EscapeString(data.InviteURL)); err != nil {
			return err
		}
		scores := components.ScoresFragment(viewmodel.ScoresFragment{
			MatchID:     data.MatchID,
			PlayerTaken: data.PlayerTaken,
			CPUTaken:    data.CPUTaken,
			Target:      data.Target,
		})
		if err := scores.Render(ctx, w); err != nil {
			return err
		}
		arena := components.ArenaFragment(viewmodel.ArenaFragment{
			MatchID:     data.MatchID,
			Status:      data.Status,
			Slapper:     data.Slapper,
			PlayerTaken: data.PlayerTaken,
			CPUTaken:    data.CPUTaken,
			Target:      data.Target,
		})
		if err := arena.Render(ctx, w); err != nil {
			return err
		}
		if err := components.PowerBar().Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w,
			`<button id="slap" class="slap" data-action="/match/%s/slap">SLAP</button>`,
			html.EscapeString(data.MatchID)); err != nil {
			return err
		}
		overlay := components.OverlayFragment(viewmodel.OverlayFragment{
			MatchID:     data.MatchID,
			Status:      data.Status,
			WinnerLabel: data.WinnerLabel,
			ShowStart:   data.ShowStart,
		})
		if err := overlay.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><script src="/static/app.js"></script>`)
		return err
	})
	return layout(data.Title, body)
}
