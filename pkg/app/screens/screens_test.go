package screens

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

type stubClient struct {
	failRover *rovers.Rover
	lastQuery services.PhotoQuery
}

func (c *stubClient) FetchManifest(_ context.Context, r rovers.Rover) (models.Manifest, error) {
	if c.failRover != nil && *c.failRover == r {
		return models.Manifest{}, errors.New("rate limited")
	}
	return models.Manifest{Name: r.String(), Status: "complete", MaxDate: "2010-03-21", MaxSol: 2208}, nil
}

func (c *stubClient) FetchPhotos(_ context.Context, _ rovers.Rover, q services.PhotoQuery) ([]models.Photo, error) {
	c.lastQuery = q
	return []models.Photo{{ID: 1, Camera: "NAVCAM", ImgSrc: "http://example.com/1.jpg"}}, nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds every resulting message back into the screen
func run(t *testing.T, r *RootScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(t, r, c)
		}
		return
	}
	_, next := r.Update(msg)
	run(t, r, next)
}

func TestInitLoadsAllManifests(t *testing.T) {
	st := store.New()
	root := NewRootScreen(&stubClient{}, st)

	assert.Contains(t, root.View(), "Loading mission manifests")
	run(t, root, root.Init())

	assert.True(t, st.AllManifestsLoaded())
	m, err := st.Manifest(rovers.Opportunity)
	require.NoError(t, err)
	assert.Equal(t, "Opportunity", m.Name)
	assert.NotContains(t, root.View(), "Loading mission manifests")
}

func TestInitManifestFailure(t *testing.T) {
	st := store.New()
	spirit := rovers.Spirit
	root := NewRootScreen(&stubClient{failRover: &spirit}, st)

	run(t, root, root.Init())

	assert.False(t, st.AllManifestsLoaded())
	loaded, err := st.ManifestLoaded(rovers.Spirit)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Contains(t, root.View(), "rate limited")
}

func TestOpenRoverFetchesPhotos(t *testing.T) {
	st := store.New()
	client := &stubClient{}
	root := NewRootScreen(client, st)
	run(t, root, root.Init())

	_, cmd := root.Update(key("down"))
	run(t, root, cmd)
	_, cmd = root.Update(key("enter"))
	run(t, root, cmd)

	assert.Equal(t, roverView, root.currentView)
	viewed, ok := st.ViewedRover()
	require.True(t, ok)
	assert.Equal(t, rovers.Opportunity, viewed)

	assert.Equal(t, "2010-03-21", client.lastQuery.EarthDate)
	assert.Len(t, client.lastQuery.Cameras, len(rovers.CamerasForRover(rovers.Opportunity)))
	assert.Contains(t, root.View(), "1 photos")
}

func TestToggleCameraAndRefetch(t *testing.T) {
	st := store.New()
	client := &stubClient{}
	root := NewRootScreen(client, st)
	run(t, root, root.Init())

	_, cmd := root.Update(key("enter"))
	run(t, root, cmd)

	// deselect FHAZ, the first Curiosity camera
	_, cmd = root.Update(key("x"))
	run(t, root, cmd)
	assert.NotContains(t, st.SelectedCameraIDs(), rovers.FHAZ)

	_, cmd = root.Update(key("enter"))
	run(t, root, cmd)
	assert.Equal(t, st.SelectedCameraIDs(), client.lastQuery.Cameras)
	assert.NotContains(t, client.lastQuery.Cameras, rovers.FHAZ)
}

func TestBackToManifests(t *testing.T) {
	root := NewRootScreen(&stubClient{}, store.New())
	run(t, root, root.Init())

	_, cmd := root.Update(key("enter"))
	run(t, root, cmd)
	require.Equal(t, roverView, root.currentView)

	root.Update(key("esc"))
	assert.Equal(t, manifestsView, root.currentView)
	assert.True(t, strings.Contains(root.View(), "Mars Rover Manifests"))
}

func TestStalePhotosAreIgnored(t *testing.T) {
	st := store.New()
	screen := NewRoverScreen(st)
	require.NoError(t, screen.Open(rovers.Spirit))
	screen.dateInput.SetValue("2004-01-05")
	act, _ := screen.Update(key("enter"))
	require.Equal(t, actionFetch, act.kind)

	screen.SetPhotos(rovers.Curiosity, "2004-01-05", []models.Photo{{ID: 9}}, nil)
	assert.Empty(t, screen.photos)

	screen.SetPhotos(rovers.Spirit, "2004-01-06", []models.Photo{{ID: 9}}, nil)
	assert.Empty(t, screen.photos)

	screen.SetPhotos(rovers.Spirit, "2004-01-05", []models.Photo{{ID: 9}}, nil)
	assert.Len(t, screen.photos, 1)
}

func TestNoCamerasSelectedSkipsFetch(t *testing.T) {
	st := store.New()
	screen := NewRoverScreen(st)
	require.NoError(t, screen.Open(rovers.Spirit))
	st.SetSelectedCameras(nil)

	act, _ := screen.Update(key("enter"))
	assert.Equal(t, actionNone, act.kind)
}

func TestCancelledDateEditKeepsFetchInFlight(t *testing.T) {
	root := NewRootScreen(&stubClient{}, store.New())
	run(t, root, root.Init())

	_, fetch := root.Update(key("enter"))
	require.NotNil(t, fetch)
	require.Contains(t, root.View(), "Loading photos")

	root.Update(key("d"))
	root.Update(key("backspace"))
	root.Update(key("esc"))
	assert.Equal(t, "2010-03-21", root.rover.Date())

	run(t, root, fetch)
	assert.NotContains(t, root.View(), "Loading photos")
	assert.Contains(t, root.View(), "1 photos")
}

func TestManifestForUnknownRoverIsReported(t *testing.T) {
	st := store.New()
	root := NewRootScreen(&stubClient{}, st)

	bogus := rovers.Rover(7)
	root.Update(manifestMsg{rover: bogus, manifest: models.Manifest{Name: "Sojourner"}})

	assert.ErrorIs(t, root.manifests.errors[bogus], rovers.ErrUnknownRover)
	assert.False(t, st.AllManifestsLoaded())
}
