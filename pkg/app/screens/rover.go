package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mars-gallery/pkg/app/styles"
	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

const maxListedPhotos = 15

type RoverScreen struct {
	store *store.Store
	rover rovers.Rover

	cursor      int
	dateInput   textinput.Model
	editingDate bool
	savedDate   string

	// date of the fetch in flight, empty when idle
	pending string
	photos  []models.Photo
	err     error
}

func NewRoverScreen(st *store.Store) *RoverScreen {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = 10
	ti.Width = 12

	return &RoverScreen{store: st, dateInput: ti}
}

// Open switches the screen to r, selecting all of its cameras and the latest photo date
func (s *RoverScreen) Open(r rovers.Rover) error {
	if err := s.store.ViewRover(r); err != nil {
		return err
	}
	s.rover = r
	s.cursor = 0
	s.photos = nil
	s.err = nil
	s.editingDate = false
	s.dateInput.Blur()

	manifest, _ := s.store.Manifest(r)
	s.dateInput.SetValue(manifest.MaxDate)
	s.pending = manifest.MaxDate
	return nil
}

// Date returns the earth date being browsed
func (s *RoverScreen) Date() string {
	return strings.TrimSpace(s.dateInput.Value())
}

// SetPhotos applies a fetch result unless another rover or date was requested since
func (s *RoverScreen) SetPhotos(r rovers.Rover, date string, photos []models.Photo, err error) {
	if r != s.rover || date != s.pending {
		return
	}
	s.pending = ""
	s.photos = photos
	s.err = err
}

func (s *RoverScreen) Update(msg tea.Msg) (action, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editingDate {
			var cmd tea.Cmd
			s.dateInput, cmd = s.dateInput.Update(msg)
			return action{}, cmd
		}
		return action{}, nil
	}

	if s.editingDate {
		switch key.String() {
		case "enter":
			s.editingDate = false
			s.dateInput.Blur()
			return s.fetch(), nil
		case "esc":
			s.editingDate = false
			s.dateInput.Blur()
			s.dateInput.SetValue(s.savedDate)
			return action{}, nil
		}
		var cmd tea.Cmd
		s.dateInput, cmd = s.dateInput.Update(msg)
		return action{}, cmd
	}

	available := s.store.AvailableCameras()
	switch key.String() {
	case "esc", "backspace", "q":
		return action{kind: actionBack}, nil
	case "up", "k":
		if len(available) > 0 {
			s.cursor = (s.cursor + len(available) - 1) % len(available)
		}
	case "down", "j":
		if len(available) > 0 {
			s.cursor = (s.cursor + 1) % len(available)
		}
	case " ", "space", "x":
		if s.cursor < len(available) {
			if err := s.store.ToggleCamera(available[s.cursor].ID); err != nil {
				s.err = err
			}
		}
	case "d":
		s.editingDate = true
		s.savedDate = s.dateInput.Value()
		return action{}, s.dateInput.Focus()
	case "enter":
		return s.fetch(), nil
	}
	return action{}, nil
}

func (s *RoverScreen) fetch() action {
	selected := s.store.SelectedCameraIDs()
	if len(selected) == 0 || s.Date() == "" {
		s.photos = nil
		s.pending = ""
		return action{}
	}
	s.pending = s.Date()
	s.err = nil
	return action{
		kind:  actionFetch,
		rover: s.rover,
		query: services.PhotoQuery{EarthDate: s.Date(), Cameras: selected},
	}
}

func (s *RoverScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("📷 %s Images", s.rover)))
	b.WriteString("\n")

	b.WriteString(styles.TextStyle.Render("Earth date: "))
	b.WriteString(s.dateInput.View())
	b.WriteString("\n\n")

	selected := make(map[rovers.Camera]bool)
	for _, id := range s.store.SelectedCameraIDs() {
		selected[id] = true
	}
	for i, cam := range s.store.AvailableCameras() {
		cursor := "  "
		if i == s.cursor && !s.editingDate {
			cursor = styles.CursorStyle.Render("> ")
		}
		box := "[ ]"
		if selected[cam.ID] {
			box = styles.CheckedStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("%s%s %-8s %s\n", cursor, box, cam.Name, styles.MutedStyle.Render(cam.FullName)))
	}
	b.WriteString("\n")

	switch {
	case s.err != nil:
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)))
	case s.pending != "":
		b.WriteString(styles.WarningStyle.Render("Loading photos..."))
	case len(s.photos) == 0:
		b.WriteString(styles.MutedStyle.Render("No photos for this day and camera selection"))
	default:
		b.WriteString(styles.TextStyle.Render(fmt.Sprintf("%d photos", len(s.photos))))
		b.WriteString("\n")
		for i, p := range s.photos {
			if i == maxListedPhotos {
				b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("… and %d more", len(s.photos)-maxListedPhotos)))
				break
			}
			b.WriteString(fmt.Sprintf("%-8s %s\n", p.Camera, styles.MutedStyle.Render(p.ImgSrc)))
		}
	}

	b.WriteString(styles.HelpStyle.Render("↑/↓ camera • space toggle • d edit date • enter show • esc back"))
	return b.String()
}
