package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"mars-gallery/pkg/app"
	"mars-gallery/pkg/services"
)

// newBrowseCmd creates a new command for the terminal browser
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse manifests and photos in the terminal",
		Long:  `Open an interactive terminal browser for rover manifests, cameras and photos.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)

			if err := app.NewApp(services.Default()).Run(); err != nil {
				cobra.CheckErr(err)
			}
		},
	}
}
