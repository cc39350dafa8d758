package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"mars-gallery/pkg/config"
	"mars-gallery/pkg/handlers"
	"mars-gallery/pkg/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize services
	services.InitService(cfg)

	// Set up HTTP handlers
	server := handlers.NewServer(
		services.Default(),
		handlers.NewSessions(30*time.Minute),
		handlers.PugRenderer(cfg.ViewsDir),
	)

	// Start server
	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), server.Routes()); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
