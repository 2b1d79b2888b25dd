package main

import (
	"log"

	"github.com/joho/godotenv"

	"chartpipe/internal/config"
	"chartpipe/ui"
)

func main() {
	// .env is optional; real env vars win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := ui.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
