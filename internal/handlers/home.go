package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"slapdown/internal/game"
	"slapdown/internal/viewmodel"
	"slapdown/views/pages"
)

type HomeHandler struct {
	store *game.Store
}

func NewHomeHandler(store *game.Store) *HomeHandler {
	return &HomeHandler{store: store}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/matches", h.createMatch)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{
		Title:         "Slapdown",
		Targets:       []int{5, 10, 15, 20},
		DefaultTarget: game.DefaultTarget,
	}))
}

func (h *HomeHandler) createMatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	target := parseInt(r.FormValue("target"), game.DefaultTarget)
	match := h.store.CreateMatch(target)
	http.Redirect(w, r, "/match/"+match.ID, http.StatusSeeOther)
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
