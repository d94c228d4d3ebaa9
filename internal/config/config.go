// Package config reads server settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads .env if present. Missing files are fine; deployed environments
// set real variables.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}

// Addr returns the listen address, ":8080" unless PORT is set.
func Addr() string {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// BaseURL returns the externally visible base URL, without a trailing slash,
// or empty when unset.
func BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_URL")), "/")
}
