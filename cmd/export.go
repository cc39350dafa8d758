package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

// newExportCmd creates a new command for exporting manifest data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export manifest data",
		Long:  `Export the manifests of all rovers in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			exportData(cmd.Context(), format)
		},
	}
}

// exportData exports manifest data in the specified format
func exportData(ctx context.Context, format string) {
	if format != "json" {
		fmt.Printf("Unsupported export format: %s\n", format)
		fmt.Println("Supported formats: json")
		os.Exit(1)
	}

	st := store.New()
	if err := services.LoadManifests(ctx, services.Default(), st); err != nil {
		fmt.Printf("Error loading manifests: %v\n", err)
		os.Exit(1)
	}

	type export struct {
		models.RoverManifest
		Cameras []rovers.CameraData `json:"cameras"`
	}
	out := make([]export, 0, len(rovers.All()))
	for _, rover := range rovers.All() {
		m, _ := st.Manifest(rover)
		out = append(out, export{
			RoverManifest: models.RoverManifest{Rover: rover.String(), Slug: rover.Slug(), Loaded: true, Manifest: m},
			Cameras:       rovers.CamerasForRover(rover),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
