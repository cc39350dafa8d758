package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

// Photo query options shared by show-photos and archive
var (
	earthDate   string
	cameraNames []string
	page        int
)

// newShowPhotosCmd creates a new command for listing a rover's photos
func newShowPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-photos [rover]",
		Short: "Show photos taken by a rover on a given day",
		Long:  `Show the photos a rover took on an earth date, optionally restricted to some cameras. The date defaults to the rover's latest photo date.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				fmt.Printf("Error: failed to load configuration: %v\n", err)
				os.Exit(1)
			}
			services.InitService(cfg)

			rover, photos, err := queryPhotos(cmd.Context(), args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
			showPhotos(rover, photos)
		},
	}

	addPhotoFlags(cmd)
	return cmd
}

func addPhotoFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&earthDate, "date", "d", "", "Earth date to browse (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&cameraNames, "camera", "c", nil, "Cameras to include, e.g. NAVCAM,FHAZ (default all)")
	cmd.Flags().IntVar(&page, "page", 0, "Result page, 25 photos per page (default all)")
}

// queryPhotos resolves the rover and camera flags through a store, the same
// way the pages do, and fetches the matching photos
func queryPhotos(ctx context.Context, roverArg string) (rovers.Rover, []models.Photo, error) {
	rover, err := rovers.ParseRover(roverArg)
	if err != nil {
		return rover, nil, err
	}

	st := store.New()
	if err := st.ViewRover(rover); err != nil {
		return rover, nil, err
	}

	if len(cameraNames) > 0 {
		var selected []rovers.CameraData
		for _, name := range cameraNames {
			c, err := rovers.ParseCamera(name)
			if err != nil {
				return rover, nil, err
			}
			if !rovers.HasCamera(rover, c) {
				return rover, nil, fmt.Errorf("%w: %s is not mounted on %s", rovers.ErrUnknownCamera, c, rover)
			}
			for _, cam := range st.AvailableCameras() {
				if cam.ID == c {
					selected = append(selected, cam)
				}
			}
		}
		st.SetSelectedCameras(selected)
	}

	date := earthDate
	if date == "" {
		m, err := services.GetManifest(ctx, rover)
		if err != nil {
			return rover, nil, err
		}
		date = m.MaxDate
	}

	photos, err := services.GetPhotos(ctx, rover, services.PhotoQuery{
		EarthDate: date,
		Page:      page,
		Cameras:   st.SelectedCameraIDs(),
	})
	return rover, photos, err
}

// showPhotos displays the photos of a rover
func showPhotos(rover rovers.Rover, photos []models.Photo) {
	if len(photos) == 0 {
		fmt.Println("No photos found.")
		return
	}

	fmt.Printf("Rover: %s\n", rover)
	fmt.Printf("Date: %s (sol %d)\n", photos[0].EarthDate, photos[0].Sol)
	fmt.Printf("Photos: %d\n", len(photos))
	fmt.Println("================")

	for i, photo := range photos {
		fmt.Printf("%d. %s (%s)\n", i+1, photo.CameraName, photo.Camera)
		fmt.Printf("   ID: %d\n", photo.ID)
		fmt.Printf("   URL: %s\n", photo.ImgSrc)
		fmt.Println()
	}
}
