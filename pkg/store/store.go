package store

import (
	"fmt"
	"sync"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
)

type roverState struct {
	loaded   bool
	manifest models.Manifest
}

// Store holds the browsing state of one user: a manifest and loaded flag per
// rover, and one camera selection shared by whichever rover is being viewed.
type Store struct {
	mu        sync.RWMutex
	rovers    [3]roverState
	viewed    rovers.Rover
	hasViewed bool
	available []rovers.CameraData
	selected  []rovers.CameraData
}

// New returns a store with every manifest empty and not loaded
func New() *Store {
	s := &Store{
		available: []rovers.CameraData{},
		selected:  []rovers.CameraData{},
	}
	for i := range s.rovers {
		s.rovers[i].manifest = models.EmptyManifest()
	}
	return s
}

func (s *Store) state(r rovers.Rover) (*roverState, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", rovers.ErrUnknownRover, int(r))
	}
	return &s.rovers[r], nil
}

// SetManifestLoaded overwrites the loaded flag for r
func (s *Store) SetManifestLoaded(r rovers.Rover, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(r)
	if err != nil {
		return err
	}
	st.loaded = value
	return nil
}

// SetManifest replaces the manifest for r. The loaded flag is left as is.
func (s *Store) SetManifest(r rovers.Rover, m models.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.state(r)
	if err != nil {
		return err
	}
	st.manifest = m
	return nil
}

// ManifestLoaded returns the loaded flag for r
func (s *Store) ManifestLoaded(r rovers.Rover) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.state(r)
	if err != nil {
		return false, err
	}
	return st.loaded, nil
}

// Manifest returns the manifest held for r
func (s *Store) Manifest(r rovers.Rover) (models.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, err := s.state(r)
	if err != nil {
		return models.Manifest{}, err
	}
	return st.manifest, nil
}

// AllManifestsLoaded reports whether every rover's manifest is loaded
func (s *Store) AllManifestsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := true
	for _, st := range s.rovers {
		all = all && st.loaded
	}
	return all
}

// SetAvailableCameras replaces the available camera list
func (s *Store) SetAvailableCameras(cameras []rovers.CameraData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.available = clone(cameras)
}

// SetSelectedCameras replaces the selected camera list
func (s *Store) SetSelectedCameras(cameras []rovers.CameraData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = clone(cameras)
}

// AvailableCameras returns a copy of the available camera list
func (s *Store) AvailableCameras() []rovers.CameraData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.available)
}

// SelectedCameras returns a copy of the selected camera list
func (s *Store) SelectedCameras() []rovers.CameraData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.selected)
}

// SelectedCameraIDs projects the selection onto camera ids, keeping order and duplicates
func (s *Store) SelectedCameraIDs() []rovers.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]rovers.Camera, len(s.selected))
	for i, cam := range s.selected {
		ids[i] = cam.ID
	}
	return ids
}

// ViewRover makes r the viewed rover and resets both camera lists to its
// catalog, with every camera selected.
func (s *Store) ViewRover(r rovers.Rover) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %d", rovers.ErrUnknownRover, int(r))
	}
	cams := rovers.CamerasForRover(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewed = r
	s.hasViewed = true
	s.available = cams
	s.selected = clone(cams)
	return nil
}

// ViewedRover returns the rover last passed to ViewRover
func (s *Store) ViewedRover() (rovers.Rover, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewed, s.hasViewed
}

// ToggleCamera adds c to the selection, or removes it if already selected.
// The selection keeps the order of the available list.
func (s *Store) ToggleCamera(c rovers.Camera) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !containsCamera(s.available, c) {
		return fmt.Errorf("%w: %s is not available", rovers.ErrUnknownCamera, c)
	}

	selected := make([]rovers.CameraData, 0, len(s.available))
	wasSelected := containsCamera(s.selected, c)
	for _, cam := range s.available {
		if cam.ID == c {
			if !wasSelected {
				selected = append(selected, cam)
			}
			continue
		}
		if containsCamera(s.selected, cam.ID) {
			selected = append(selected, cam)
		}
	}
	s.selected = selected
	return nil
}

func containsCamera(cams []rovers.CameraData, c rovers.Camera) bool {
	for _, cam := range cams {
		if cam.ID == c {
			return true
		}
	}
	return false
}

func clone(cams []rovers.CameraData) []rovers.CameraData {
	out := make([]rovers.CameraData, len(cams))
	copy(out, cams)
	return out
}
