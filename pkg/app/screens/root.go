package screens

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

type screenType int

const (
	manifestsView screenType = iota
	roverView
)

const fetchTimeout = 30 * time.Second

type manifestMsg struct {
	rover    rovers.Rover
	manifest models.Manifest
	err      error
}

type photosMsg struct {
	rover  rovers.Rover
	date   string
	photos []models.Photo
	err    error
}

// RootScreen owns the store. Fetches run as commands and their results are
// applied to the store only in Update, so the store has a single writer.
type RootScreen struct {
	client services.Client
	store  *store.Store

	currentView screenType
	manifests   *ManifestsScreen
	rover       *RoverScreen

	width  int
	height int
}

func NewRootScreen(client services.Client, st *store.Store) *RootScreen {
	return &RootScreen{
		client:      client,
		store:       st,
		currentView: manifestsView,
		manifests:   NewManifestsScreen(st),
		rover:       NewRoverScreen(st),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	for _, rover := range rovers.All() {
		cmds = append(cmds, fetchManifest(r.client, rover))
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}

	case manifestMsg:
		if msg.err != nil {
			r.manifests.SetError(msg.rover, msg.err)
			return r, nil
		}
		if err := r.store.SetManifest(msg.rover, msg.manifest); err != nil {
			r.manifests.SetError(msg.rover, err)
			return r, nil
		}
		if err := r.store.SetManifestLoaded(msg.rover, true); err != nil {
			r.manifests.SetError(msg.rover, err)
		}
		return r, nil

	case photosMsg:
		r.rover.SetPhotos(msg.rover, msg.date, msg.photos, msg.err)
		return r, nil
	}

	switch r.currentView {
	case roverView:
		act, cmd := r.rover.Update(msg)
		switch act.kind {
		case actionBack:
			r.currentView = manifestsView
		case actionFetch:
			return r, fetchPhotos(r.client, act.rover, act.query)
		}
		return r, cmd

	default:
		act := r.manifests.Update(msg)
		switch act.kind {
		case actionQuit:
			return r, tea.Quit
		case actionOpen:
			if err := r.rover.Open(act.rover); err == nil {
				r.currentView = roverView
				query := services.PhotoQuery{EarthDate: r.rover.Date(), Cameras: r.store.SelectedCameraIDs()}
				return r, fetchPhotos(r.client, act.rover, query)
			}
		}
		return r, nil
	}
}

func (r *RootScreen) View() string {
	if r.currentView == roverView {
		return r.rover.View()
	}
	return r.manifests.View()
}

func fetchManifest(client services.Client, rover rovers.Rover) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		m, err := client.FetchManifest(ctx, rover)
		return manifestMsg{rover: rover, manifest: m, err: err}
	}
}

func fetchPhotos(client services.Client, rover rovers.Rover, q services.PhotoQuery) tea.Cmd {
	if q.EarthDate == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		photos, err := client.FetchPhotos(ctx, rover, q)
		return photosMsg{rover: rover, date: q.EarthDate, photos: photos, err: err}
	}
}
