package cmd

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mars-gallery/pkg/config"
	"mars-gallery/pkg/handlers"
	"mars-gallery/pkg/services"
)

const sessionTTL = 30 * time.Minute

// newServeCmd creates a new command for serving the web application
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  `Start the web server to browse manifests and rover images via HTTP.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			serveWebsite(cfg)
		},
	}
}

// serveWebsite runs the web server for the manifests and rover pages
func serveWebsite(cfg *config.Config) {
	server := handlers.NewServer(
		services.Default(),
		handlers.NewSessions(sessionTTL),
		handlers.PugRenderer(cfg.ViewsDir),
	)

	cfg.PrintServerStartMessage()
	if err := http.ListenAndServe(cfg.ServerAddress(), server.Routes()); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}
