package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mars-gallery/pkg/app/styles"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/store"
)

type ManifestsScreen struct {
	store  *store.Store
	cursor int
	errors map[rovers.Rover]error
}

func NewManifestsScreen(st *store.Store) *ManifestsScreen {
	return &ManifestsScreen{store: st, errors: make(map[rovers.Rover]error)}
}

// SetError records a failed manifest fetch for display
func (m *ManifestsScreen) SetError(r rovers.Rover, err error) {
	m.errors[r] = err
}

// Selected returns the rover under the cursor
func (m *ManifestsScreen) Selected() rovers.Rover {
	return rovers.All()[m.cursor]
}

func (m *ManifestsScreen) Update(msg tea.Msg) action {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return action{}
	}

	all := rovers.All()
	switch key.String() {
	case "q":
		return action{kind: actionQuit}
	case "up", "k":
		m.cursor = (m.cursor + len(all) - 1) % len(all)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(all)
	case "enter":
		return action{kind: actionOpen, rover: m.Selected()}
	}
	return action{}
}

func (m *ManifestsScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("🔴 Mars Rover Manifests"))
	b.WriteString("\n")

	if !m.store.AllManifestsLoaded() {
		b.WriteString(styles.WarningStyle.Render("Loading mission manifests..."))
		b.WriteString("\n\n")
	}

	for i, rover := range rovers.All() {
		cardStyle := styles.CardStyle
		if i == m.cursor {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(rover.String())
		var body string
		loaded, _ := m.store.ManifestLoaded(rover)
		switch {
		case m.errors[rover] != nil && !loaded:
			body = styles.ErrorStyle.Render(fmt.Sprintf("Failed to load: %v", m.errors[rover]))
		case !loaded:
			body = styles.MutedStyle.Render("Loading...")
		default:
			man, _ := m.store.Manifest(rover)
			body = lipgloss.JoinVertical(lipgloss.Left,
				styles.StatusStyle(man.Status).Render("Status: "+man.Status),
				styles.TextStyle.Render(fmt.Sprintf("Launched %s, landed %s", man.LaunchDate, man.LandingDate)),
				styles.TextStyle.Render(fmt.Sprintf("Latest photo %s (sol %d)", man.MaxDate, man.MaxSol)),
				styles.MutedStyle.Render(fmt.Sprintf("%d photos", man.TotalPhotos)),
			)
		}

		b.WriteString(cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body)))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/↓ select • enter browse images • q quit"))
	return b.String()
}
