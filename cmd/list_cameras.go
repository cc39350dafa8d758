package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"mars-gallery/pkg/rovers"
)

// newListCamerasCmd creates a new command for listing the camera catalog
func newListCamerasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-cameras [rover]",
		Short: "List the cameras of a rover",
		Long:  `List the cameras mounted on a rover, or on every rover when none is given.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			targets := rovers.All()
			if len(args) > 0 {
				rover, err := rovers.ParseRover(args[0])
				if err != nil {
					log.Fatalf("Error: %v", err)
				}
				targets = []rovers.Rover{rover}
			}
			listCameras(targets)
		},
	}
}

// listCameras displays the camera catalog of each rover
func listCameras(targets []rovers.Rover) {
	t := newTable().Headers("Rover", "Camera", "Name")
	total := 0
	for _, rover := range targets {
		for _, cam := range rovers.CamerasForRover(rover) {
			t.Row(rover.String(), cam.Name, cam.FullName)
			total++
		}
	}

	fmt.Println(t)
	fmt.Printf("Total: %d cameras across %d rovers\n", total, len(targets))
}
