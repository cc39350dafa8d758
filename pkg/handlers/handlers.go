package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/eknkc/pug"
	"github.com/eknkc/pug/compiler"

	"mars-gallery/pkg/models"
	"mars-gallery/pkg/rovers"
	"mars-gallery/pkg/services"
	"mars-gallery/pkg/store"
)

// Renderer writes a named page template with data
type Renderer func(w io.Writer, name string, data any) error

// PugRenderer compiles templates from dir on every render, so edits to views
// show up without a restart. A relative dir is resolved against the working
// directory once.
func PugRenderer(dir string) Renderer {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	options := pug.Options{Dir: compiler.FsDir(dir)}

	return func(w io.Writer, name string, data any) error {
		template, err := pug.CompileFile(name+".pug", options)
		if err != nil {
			return err
		}
		return template.Execute(w, data)
	}
}

// Server serves the manifests page, the rover images page and their JSON feeds
type Server struct {
	client   services.Client
	sessions *Sessions
	render   Renderer
}

// NewServer creates a server reading from client and rendering with render
func NewServer(client services.Client, sessions *Sessions, render Renderer) *Server {
	return &Server{client: client, sessions: sessions, render: render}
}

// Routes registers every handler on a new mux
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.IndexHandler)
	mux.HandleFunc("GET /rover/{id}/images", s.RoverImagesHandler)
	mux.HandleFunc("GET /api/manifests", s.ManifestsFeedHandler)
	mux.HandleFunc("GET /api/rover/{id}/cameras", s.CamerasFeedHandler)
	mux.HandleFunc("GET /api/rover/{id}/photos", s.PhotosFeedHandler)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("./public"))))
	return mux
}

// IndexHandler handles requests for the manifests page
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Generating Manifests Page")

	st := s.sessions.Get(w, r)
	if err := services.LoadManifests(r.Context(), s.client, st); err != nil {
		log.Printf("Manifest load error: %v", err)
	}

	s.execute(w, "index", indexPage(st))
}

// RoverImagesHandler handles requests for a rover's images page
func (s *Server) RoverImagesHandler(w http.ResponseWriter, r *http.Request) {
	rover, err := rovers.ParseRover(r.PathValue("id"))
	if err != nil {
		log.Println("Rover not found: " + r.PathValue("id"))
		http.NotFound(w, r)
		return
	}
	log.Printf("Generating Images Page: %s", rover)

	st := s.sessions.Get(w, r)
	page, err := s.roverPage(r, st, rover)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.execute(w, "rover", page)
}

// ManifestsFeedHandler handles requests for the manifests feed (JSON)
func (s *Server) ManifestsFeedHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Generating Manifests Feed")

	st := s.sessions.Get(w, r)
	if err := services.LoadManifests(r.Context(), s.client, st); err != nil {
		log.Printf("Manifest load error: %v", err)
		http.Error(w, "Failed to load manifests", http.StatusBadGateway)
		return
	}

	writeJSON(w, indexPage(st).Manifests)
}

// CamerasFeedHandler handles requests for a rover's camera catalog (JSON)
func (s *Server) CamerasFeedHandler(w http.ResponseWriter, r *http.Request) {
	rover, err := rovers.ParseRover(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, rovers.CamerasForRover(rover))
}

// PhotosFeedHandler handles requests for a rover's photos (JSON)
func (s *Server) PhotosFeedHandler(w http.ResponseWriter, r *http.Request) {
	rover, err := rovers.ParseRover(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	st := s.sessions.Get(w, r)
	page, err := s.roverPage(r, st, rover)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if page.Error != "" {
		http.Error(w, page.Error, http.StatusBadGateway)
		return
	}

	writeJSON(w, page.Photos)
}

// roverPage applies the request's camera selection and date to st and loads
// the matching photos. Only bad input is returned as an error; fetch failures
// are reported through the page's Error field.
func (s *Server) roverPage(r *http.Request, st *store.Store, rover rovers.Rover) (models.RoverPage, error) {
	page := models.RoverPage{Rover: rover.String(), Slug: rover.Slug()}

	if err := st.ViewRover(rover); err != nil {
		return page, err
	}
	if err := selectCameras(st, rover, r.URL.Query()["camera"]); err != nil {
		return page, err
	}

	if err := services.LoadManifests(r.Context(), s.client, st); err != nil {
		log.Printf("Manifest load error: %v", err)
	}
	page.Manifest, _ = st.Manifest(rover)
	page.Cameras = cameraOptions(st)

	page.Date = r.URL.Query().Get("date")
	if page.Date == "" {
		page.Date = page.Manifest.MaxDate
	}
	if page.Date == "" {
		page.Error = "Manifest not loaded yet, pick a date to browse"
		return page, nil
	}

	photos, err := s.client.FetchPhotos(r.Context(), rover, services.PhotoQuery{
		EarthDate: page.Date,
		Cameras:   st.SelectedCameraIDs(),
	})
	if errors.Is(err, services.ErrInvalidDate) {
		return page, err
	}
	if err != nil {
		log.Printf("Photo fetch error: %v", err)
		page.Error = "Failed to load photos"
		return page, nil
	}

	page.Photos = photos
	return page, nil
}

// selectCameras narrows the selection to the named cameras. No names keeps
// every available camera selected.
func selectCameras(st *store.Store, rover rovers.Rover, names []string) error {
	if len(names) == 0 {
		return nil
	}

	wanted := make(map[rovers.Camera]bool, len(names))
	for _, name := range names {
		c, err := rovers.ParseCamera(name)
		if err != nil {
			return err
		}
		if !rovers.HasCamera(rover, c) {
			return fmt.Errorf("%w: %s is not mounted on %s", rovers.ErrUnknownCamera, c, rover)
		}
		wanted[c] = true
	}

	var selected []rovers.CameraData
	for _, cam := range st.AvailableCameras() {
		if wanted[cam.ID] {
			selected = append(selected, cam)
		}
	}

	st.SetSelectedCameras(selected)
	return nil
}

func cameraOptions(st *store.Store) []models.CameraOption {
	selected := make(map[rovers.Camera]bool)
	for _, id := range st.SelectedCameraIDs() {
		selected[id] = true
	}

	available := st.AvailableCameras()
	options := make([]models.CameraOption, 0, len(available))
	for _, cam := range available {
		options = append(options, models.CameraOption{
			Name:     cam.Name,
			FullName: cam.FullName,
			Selected: selected[cam.ID],
		})
	}
	return options
}

func indexPage(st *store.Store) models.IndexPage {
	page := models.IndexPage{Loading: !st.AllManifestsLoaded()}
	for _, rover := range rovers.All() {
		loaded, _ := st.ManifestLoaded(rover)
		manifest, _ := st.Manifest(rover)
		page.Manifests = append(page.Manifests, models.RoverManifest{
			Rover:    rover.String(),
			Slug:     rover.Slug(),
			Loaded:   loaded,
			Manifest: manifest,
		})
	}
	return page
}

func (s *Server) execute(w http.ResponseWriter, name string, data any) {
	if err := s.render(w, name, data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("Template error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonString, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		log.Printf("JSON error: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(jsonString); err != nil {
		log.Printf("Write error: %v", err)
	}
}
