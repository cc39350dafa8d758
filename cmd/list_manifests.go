package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

// newListManifestsCmd creates a new command for listing mission manifests
func newListManifestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-manifests",
		Short: "List the mission manifests of all rovers",
		Long:  `List the mission manifest of Curiosity, Opportunity and Spirit with their photo counts.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			services.InitService(cfg)
			listManifests(cmd.Context())
		},
	}
}

// listManifests loads and displays every rover's manifest
func listManifests(ctx context.Context) {
	st := store.New()
	if err := services.LoadManifests(ctx, services.Default(), st); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	t := newTable().Headers("Rover", "Status", "Launch", "Landing", "Max Date", "Max Sol", "Photos")
	for _, rover := range rovers.All() {
		loaded, _ := st.ManifestLoaded(rover)
		if !loaded {
			t.Row(rover.String(), "unavailable", "", "", "", "", "")
			continue
		}
		m, _ := st.Manifest(rover)
		t.Row(rover.String(), m.Status, m.LaunchDate, m.LandingDate, m.MaxDate,
			strconv.Itoa(m.MaxSol), strconv.Itoa(m.TotalPhotos))
	}

	fmt.Println("Mission Manifests:")
	fmt.Println(t)
}

// newTable returns a table styled like the rest of the CLI output
func newTable() *table.Table {
	purple := lipgloss.Color("99")
	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
