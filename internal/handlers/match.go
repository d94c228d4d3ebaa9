package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"slapdown/internal/config"
	"slapdown/internal/game"
	"slapdown/internal/viewmodel"
	"slapdown/views/components"
	"slapdown/views/pages"
)

type MatchHandler struct {
	store *game.Store
}

func NewMatchHandler(store *game.Store) *MatchHandler {
	return &MatchHandler{store: store}
}

func (h *MatchHandler) RegisterRoutes(r chi.Router) {
	r.Route("/match/{id}", func(r chi.Router) {
		r.Get("/", h.matchPage)
		r.Post("/start", h.start)
		r.Post("/slap", h.slap)
		r.Post("/impact", h.impact)
		r.Post("/resolved", h.resolved)
		r.Get("/arena", h.arenaFragment)
		r.Get("/scores", h.scoresFragment)
		r.Get("/stream", h.stream)
		r.Get("/ws", h.ws)
	})
}

func (h *MatchHandler) matchPage(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ensureClientCookie(w, r)

	snapshot := match.Snapshot(time.Now().UTC())
	data := viewmodel.MatchPage{
		Title:       "Slapdown",
		MatchID:     matchID,
		InviteURL:   buildInviteURL(r, matchID),
		Status:      snapshot.Status,
		Slapper:     snapshot.Slapper,
		Target:      snapshot.Target,
		PlayerTaken: snapshot.PlayerTaken,
		CPUTaken:    snapshot.CPUTaken,
		Power:       snapshot.Power,
		WinnerLabel: winnerLabel(snapshot.Winner),
		ShowStart:   snapshot.Status == game.StatusIdle || snapshot.Status == game.StatusFinished,
	}
	render(w, r, pages.MatchPage(data))
}

func (h *MatchHandler) start(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	match.Start(time.Now().UTC())
	h.store.EnsureLoop(matchID)
	h.store.Wake(matchID)
	h.store.Publish(matchID, game.EventArena)
	h.store.Publish(matchID, game.EventScores)
	h.store.Publish(matchID, game.EventOverlay)
	h.store.Publish(matchID, game.EventFrame)
	if isFetch(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/match/"+matchID, http.StatusSeeOther)
}

// slap is the player's input. Out of turn it is a no-op, not an error; the
// 204 either way keeps the client from treating mistimed clicks as failures.
func (h *MatchHandler) slap(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if match.RequestSlap(time.Now().UTC()) {
		h.store.Wake(matchID)
		h.store.Publish(matchID, game.EventFrame)
		h.store.Publish(matchID, game.EventArena)
	}
	w.WriteHeader(http.StatusNoContent)
}

// impact is raised by the browser at the contact point of its slap
// animation; it applies the damage.
func (h *MatchHandler) impact(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if match.NotifyImpact(time.Now().UTC()) {
		h.store.Wake(matchID)
		h.store.Publish(matchID, game.EventScores)
		h.store.Publish(matchID, game.EventFrame)
		if match.Winner() != "" {
			h.store.Publish(matchID, game.EventArena)
			h.store.Publish(matchID, game.EventOverlay)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolved is raised when the slap animation finishes; it advances the turn.
func (h *MatchHandler) resolved(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if match.NotifyResolved(time.Now().UTC()) {
		h.store.EnsureLoop(matchID)
		h.store.Wake(matchID)
		h.store.Publish(matchID, game.EventArena)
		h.store.Publish(matchID, game.EventFrame)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) arenaFragment(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	snapshot := match.Snapshot(time.Now().UTC())
	render(w, r, components.ArenaFragment(buildArenaFragment(matchID, snapshot)))
}

func (h *MatchHandler) scoresFragment(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	snapshot := match.Snapshot(time.Now().UTC())
	render(w, r, components.ScoresFragment(viewmodel.ScoresFragment{
		MatchID:     matchID,
		PlayerTaken: snapshot.PlayerTaken,
		CPUTaken:    snapshot.CPUTaken,
		Target:      snapshot.Target,
	}))
}

func (h *MatchHandler) stream(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	hub := h.store.Hub(matchID)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sendFragments := func(arena, scores, overlay bool) {
		snapshot := match.Snapshot(time.Now().UTC())
		if arena {
			html := renderToString(r, components.ArenaFragment(buildArenaFragment(matchID, snapshot)))
			writeSSE(w, "arena", html)
		}
		if scores {
			html := renderToString(r, components.ScoresFragment(viewmodel.ScoresFragment{
				MatchID:     matchID,
				PlayerTaken: snapshot.PlayerTaken,
				CPUTaken:    snapshot.CPUTaken,
				Target:      snapshot.Target,
			}))
			writeSSE(w, "scores", html)
		}
		if overlay {
			html := renderToString(r, components.OverlayFragment(viewmodel.OverlayFragment{
				MatchID:     matchID,
				Status:      snapshot.Status,
				WinnerLabel: winnerLabel(snapshot.Winner),
				ShowStart:   snapshot.Status == game.StatusIdle || snapshot.Status == game.StatusFinished,
			}))
			writeSSE(w, "overlay", html)
		}
		flusher.Flush()
	}

	sendFragments(true, true, true)

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-sub:
			switch event {
			case game.EventArena:
				sendFragments(true, false, false)
			case game.EventScores:
				sendFragments(false, true, false)
			case game.EventOverlay:
				sendFragments(false, false, true)
			}
			// Frame events are for the websocket stream only.
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func buildArenaFragment(matchID string, snapshot game.Snapshot) viewmodel.ArenaFragment {
	return viewmodel.ArenaFragment{
		MatchID:     matchID,
		Status:      snapshot.Status,
		Slapper:     snapshot.Slapper,
		PlayerTaken: snapshot.PlayerTaken,
		CPUTaken:    snapshot.CPUTaken,
		Target:      snapshot.Target,
		StateKey:    buildStateKey(snapshot),
	}
}

func buildStateKey(snapshot game.Snapshot) string {
	return strings.Join([]string{
		snapshot.Status,
		snapshot.Slapper,
		strconv.Itoa(snapshot.PlayerTaken),
		strconv.Itoa(snapshot.CPUTaken),
	}, "|")
}

func winnerLabel(winner string) string {
	switch winner {
	case game.ActorPlayer:
		return "You win!"
	case game.ActorCPU:
		return "CPU wins!"
	}
	return ""
}

func isFetch(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "fetch"
}

const clientCookieName = "slapdown_client"

// ensureClientCookie gives each browser a stable identity for log
// correlation across the page, SSE, and websocket connections.
func ensureClientCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(clientCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	clientID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookieName,
		Value:    clientID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return clientID
}

func clientIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(clientCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func buildInviteURL(r *http.Request, matchID string) string {
	if baseURL := config.BaseURL(); baseURL != "" {
		return baseURL + "/match/" + matchID
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/match/" + matchID
}
