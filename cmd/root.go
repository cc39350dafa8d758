package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"mars-gallery/pkg/config"
)

// Configuration flags
var (
	apiKey     string
	apiURL     string
	bucketName string
	portNumber string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mars-gallery",
		Short: "Mars Gallery is a browser for NASA Mars rover photos",
		Long: `Mars Gallery lists the mission manifests of Curiosity, Opportunity and Spirit
and lets you browse their photos by camera and earth date, on the web, in the
terminal or from the command line.`,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "k", "", "Set the NASA_API_KEY (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Set the NASA_API_BASE_URL (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set the PORT (overrides environment variable)")

	// Add commands to root
	rootCmd.AddCommand(newListManifestsCmd())
	rootCmd.AddCommand(newListCamerasCmd())
	rootCmd.AddCommand(newShowPhotosCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newBrowseCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if apiKey != "" {
		os.Setenv("NASA_API_KEY", apiKey)
	}

	if apiURL != "" {
		os.Setenv("NASA_API_BASE_URL", apiURL)
	}

	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	// Load configuration from environment variables (potentially set above)
	return config.Load()
}
