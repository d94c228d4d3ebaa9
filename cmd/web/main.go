package main

import (
	"embed"
	"io/fs"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"slapdown/internal/config"
	"slapdown/internal/game"
	"slapdown/internal/handlers"
)

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")

	config.Load()
	store := game.NewStore()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal(err)
	}

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	homeHandler := handlers.NewHomeHandler(store)
	matchHandler := handlers.NewMatchHandler(store)

	homeHandler.RegisterRoutes(r)
	matchHandler.RegisterRoutes(r)

	addr := config.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// No WriteTimeout: the SSE and websocket streams outlive any fixed
		// response deadline.
		IdleTimeout: 60 * time.Second,
	}

	log.Printf("listening on http://localhost%s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

//go:embed static/*
var embeddedStatic embed.FS
