package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/spf13/cobra"

	"mars-gallery/pkg/services"
)

// Archive options
var (
	forceArchive   bool
	thumbnailWidth int
	keepBlank      bool
)

// newArchiveCmd creates a new command for archiving photos to Cloud Storage
func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [rover]",
		Short: "Archive a day of rover photos to Cloud Storage",
		Long: `Download the photos a rover took on an earth date and upload them, with a
thumbnail of each, to the configured Cloud Storage bucket. Photos already in
the bucket are skipped unless --force is given.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			if err := cfg.RequireBucket(); err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			archivePhotos(cmd.Context(), cfg.BucketName, args[0])
		},
	}

	addPhotoFlags(cmd)
	cmd.Flags().BoolVarP(&forceArchive, "force", "f", false, "Re-upload photos that are already archived")
	cmd.Flags().IntVarP(&thumbnailWidth, "thumbnail-width", "w", services.DefaultThumbnailWidth, "Width of generated thumbnails in pixels")
	cmd.Flags().BoolVar(&keepBlank, "keep-blank", false, "Archive solid color frames too")

	return cmd
}

// archivePhotos copies a day of photos into the bucket
func archivePhotos(ctx context.Context, bucketName, roverArg string) {
	rover, photos, err := queryPhotos(ctx, roverArg)
	if err != nil {
		log.Fatalf("Failed to query photos: %v", err)
	}
	if len(photos) == 0 {
		fmt.Println("No photos to archive.")
		return
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("Warning: error closing storage client: %v", err)
		}
	}()

	archiver := services.NewArchiveService(client.Bucket(bucketName), http.DefaultClient)
	archiver.Force = forceArchive
	archiver.ThumbnailWidth = thumbnailWidth
	archiver.SkipBlank = !keepBlank

	fmt.Printf("Archiving %d %s photos to gs://%s\n", len(photos), rover, bucketName)
	result, err := archiver.Archive(ctx, rover, photos, func(step string, progress int) {
		fmt.Printf("  [%3d%%] %s\n", progress, step)
	})
	if err != nil {
		log.Fatalf("Archive failed: %v", err)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total photos: %d\n", len(photos))
	fmt.Printf("  Archived: %d\n", result.Archived)
	fmt.Printf("  Skipped: %d\n", result.Skipped)
	fmt.Printf("  Failed: %d\n", result.Failed)
}
