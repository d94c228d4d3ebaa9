package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"slapdown/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same-origin page, invite links included; the socket carries no
	// authority beyond what the HTTP endpoints already allow.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Frame is one state update pushed to the browser. The power bar redraws
// from these at meter cadence; everything else piggybacks so a reconnecting
// client resyncs from any single frame.
type Frame struct {
	Status      string  `json:"status"`
	Slapper     string  `json:"slapper"`
	PlayerTaken int     `json:"playerTaken"`
	CPUTaken    int     `json:"cpuTaken"`
	Target      int     `json:"target"`
	Power       float64 `json:"power"`
	Charging    bool    `json:"charging"`
	LockedPower float64 `json:"lockedPower"`
	Winner      string  `json:"winner,omitempty"`
}

func buildFrame(snapshot game.Snapshot) Frame {
	return Frame{
		Status:      snapshot.Status,
		Slapper:     snapshot.Slapper,
		PlayerTaken: snapshot.PlayerTaken,
		CPUTaken:    snapshot.CPUTaken,
		Target:      snapshot.Target,
		Power:       snapshot.Power,
		Charging:    snapshot.Charging,
		LockedPower: snapshot.LockedPower,
		Winner:      snapshot.Winner,
	}
}

// ws streams state frames to the browser for the duration of the page.
func (h *MatchHandler) ws(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")
	match, ok := h.store.GetMatch(matchID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade match=%s err=%v", matchID, err)
		return
	}
	defer conn.Close()
	clientID := clientIDFromCookie(r)
	log.Printf("ws open match=%s client=%s", matchID, clientID)

	hub := h.store.Hub(matchID)
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	// Reader only drains control frames and detects the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	writeFrame := func() error {
		snapshot := match.Snapshot(time.Now().UTC())
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		return conn.WriteJSON(buildFrame(snapshot))
	}

	if err := writeFrame(); err != nil {
		return
	}

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			log.Printf("ws closed match=%s client=%s", matchID, clientID)
			return
		case event, ok := <-sub:
			if !ok {
				return
			}
			if event != game.EventFrame {
				continue
			}
			if err := writeFrame(); err != nil {
				return
			}
		case <-keepAlive.C:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
