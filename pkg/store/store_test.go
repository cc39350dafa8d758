package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
)

func sampleManifest(name string) models.Manifest {
	return models.Manifest{
		Name:        name,
		LandingDate: "2004-01-04",
		LaunchDate:  "2003-06-10",
		MaxDate:     "2010-03-21",
		MaxSol:      2208,
		Status:      "complete",
		TotalPhotos: 124550,
	}
}

func TestNewStoreDefaults(t *testing.T) {
	s := New()

	for _, r := range rovers.All() {
		loaded, err := s.ManifestLoaded(r)
		require.NoError(t, err)
		assert.False(t, loaded, r.String())

		m, err := s.Manifest(r)
		require.NoError(t, err)
		assert.Equal(t, models.EmptyManifest(), m, r.String())
	}

	assert.False(t, s.AllManifestsLoaded())
	assert.Empty(t, s.AvailableCameras())
	assert.Empty(t, s.SelectedCameras())
	assert.Empty(t, s.SelectedCameraIDs())

	_, viewed := s.ViewedRover()
	assert.False(t, viewed)
}

func TestAllManifestsLoaded(t *testing.T) {
	all := rovers.All()

	// every two-of-three combination must stay false
	for skip := range all {
		s := New()
		for i, r := range all {
			if i != skip {
				require.NoError(t, s.SetManifestLoaded(r, true))
			}
		}
		assert.False(t, s.AllManifestsLoaded(), "skipped %s", all[skip])
	}

	s := New()
	for _, r := range all {
		require.NoError(t, s.SetManifestLoaded(r, true))
	}
	assert.True(t, s.AllManifestsLoaded())

	require.NoError(t, s.SetManifestLoaded(rovers.Spirit, false))
	assert.False(t, s.AllManifestsLoaded())
}

func TestSetManifestLoadedIsIdempotent(t *testing.T) {
	s := New()
	require.NoError(t, s.SetManifestLoaded(rovers.Opportunity, true))
	require.NoError(t, s.SetManifestLoaded(rovers.Opportunity, true))

	loaded, err := s.ManifestLoaded(rovers.Opportunity)
	require.NoError(t, err)
	assert.True(t, loaded)
}

func TestSetManifestRoundTrip(t *testing.T) {
	for _, r := range rovers.All() {
		s := New()
		m := sampleManifest(r.String())

		require.NoError(t, s.SetManifest(r, m))

		got, err := s.Manifest(r)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestSetManifestIsolation(t *testing.T) {
	s := New()
	require.NoError(t, s.SetManifest(rovers.Curiosity, sampleManifest("Curiosity")))

	for _, r := range []rovers.Rover{rovers.Opportunity, rovers.Spirit} {
		m, err := s.Manifest(r)
		require.NoError(t, err)
		assert.True(t, m.IsEmpty(), r.String())

		loaded, err := s.ManifestLoaded(r)
		require.NoError(t, err)
		assert.False(t, loaded, r.String())
	}
}

func TestSetManifestLeavesLoadedFlag(t *testing.T) {
	s := New()
	require.NoError(t, s.SetManifest(rovers.Spirit, sampleManifest("Spirit")))

	loaded, err := s.ManifestLoaded(rovers.Spirit)
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestUnknownRover(t *testing.T) {
	s := New()
	bad := rovers.Rover(3)

	assert.ErrorIs(t, s.SetManifestLoaded(bad, true), rovers.ErrUnknownRover)
	assert.ErrorIs(t, s.SetManifest(bad, sampleManifest("x")), rovers.ErrUnknownRover)
	assert.ErrorIs(t, s.ViewRover(bad), rovers.ErrUnknownRover)

	_, err := s.ManifestLoaded(bad)
	assert.ErrorIs(t, err, rovers.ErrUnknownRover)

	_, err = s.Manifest(bad)
	assert.ErrorIs(t, err, rovers.ErrUnknownRover)

	assert.False(t, s.AllManifestsLoaded())
}

func TestSelectedCameraIDsKeepsDuplicates(t *testing.T) {
	s := New()
	navcam := rovers.CameraData{ID: rovers.NAVCAM, Name: "NAVCAM"}
	s.SetSelectedCameras([]rovers.CameraData{navcam, navcam})

	assert.Equal(t, []rovers.Camera{rovers.NAVCAM, rovers.NAVCAM}, s.SelectedCameraIDs())
}

func TestSelectedCameraIDsKeepsOrder(t *testing.T) {
	s := New()
	s.SetSelectedCameras([]rovers.CameraData{
		{ID: rovers.MINITES},
		{ID: rovers.FHAZ},
		{ID: rovers.PANCAM},
	})

	assert.Equal(t, []rovers.Camera{rovers.MINITES, rovers.FHAZ, rovers.PANCAM}, s.SelectedCameraIDs())
}

func TestCameraListsAreCopied(t *testing.T) {
	s := New()
	cams := rovers.CamerasForRover(rovers.Curiosity)
	s.SetAvailableCameras(cams)
	s.SetSelectedCameras(cams)

	cams[0].Name = "mutated"
	assert.Equal(t, "FHAZ", s.AvailableCameras()[0].Name)
	assert.Equal(t, "FHAZ", s.SelectedCameras()[0].Name)

	got := s.SelectedCameras()
	got[0].Name = "mutated"
	assert.Equal(t, "FHAZ", s.SelectedCameras()[0].Name)
}

func TestViewRoverResetsCameras(t *testing.T) {
	s := New()
	require.NoError(t, s.ViewRover(rovers.Curiosity))
	require.NoError(t, s.ToggleCamera(rovers.CHEMCAM))

	require.NoError(t, s.ViewRover(rovers.Spirit))

	r, ok := s.ViewedRover()
	assert.True(t, ok)
	assert.Equal(t, rovers.Spirit, r)
	assert.Equal(t, rovers.CamerasForRover(rovers.Spirit), s.AvailableCameras())
	assert.Equal(t, rovers.CamerasForRover(rovers.Spirit), s.SelectedCameras())
	for _, id := range s.SelectedCameraIDs() {
		assert.True(t, rovers.HasCamera(rovers.Spirit, id))
	}
}

func TestToggleCamera(t *testing.T) {
	s := New()
	require.NoError(t, s.ViewRover(rovers.Opportunity))

	require.NoError(t, s.ToggleCamera(rovers.NAVCAM))
	assert.Equal(t, []rovers.Camera{rovers.FHAZ, rovers.RHAZ, rovers.PANCAM, rovers.MINITES}, s.SelectedCameraIDs())

	require.NoError(t, s.ToggleCamera(rovers.NAVCAM))
	assert.Equal(t, []rovers.Camera{rovers.FHAZ, rovers.RHAZ, rovers.NAVCAM, rovers.PANCAM, rovers.MINITES}, s.SelectedCameraIDs())

	assert.ErrorIs(t, s.ToggleCamera(rovers.CHEMCAM), rovers.ErrUnknownCamera)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup

	for _, r := range rovers.All() {
		wg.Add(1)
		go func(r rovers.Rover) {
			defer wg.Done()
			_ = s.SetManifest(r, sampleManifest(r.String()))
			_ = s.SetManifestLoaded(r, true)
			_ = s.AllManifestsLoaded()
		}(r)
	}
	wg.Wait()

	assert.True(t, s.AllManifestsLoaded())
}
