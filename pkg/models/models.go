package models

import (
	"mars-gallery/pkg/rovers"
)

// Manifest summarizes a rover's mission as reported by the photo API
type Manifest struct {
	Name        string `json:"name"`
	LandingDate string `json:"landing_date"`
	LaunchDate  string `json:"launch_date"`
	MaxDate     string `json:"max_date"`
	MaxSol      int    `json:"max_sol"`
	Status      string `json:"status"`
	TotalPhotos int    `json:"total_photos"`
}

// EmptyManifest returns the placeholder held for a rover before its manifest loads
func EmptyManifest() Manifest {
	return Manifest{}
}

// IsEmpty reports whether m is the empty placeholder
func (m Manifest) IsEmpty() bool {
	return m == EmptyManifest()
}

// Photo represents a single rover image
type Photo struct {
	ID         int    `json:"id"`
	ImgSrc     string `json:"img_src"`
	Camera     string `json:"camera"`
	CameraName string `json:"cameraName"`
	EarthDate  string `json:"earth_date,omitempty"`
	Sol        int    `json:"sol,omitempty"`
}

// CameraID resolves the raw camera code, reporting false for cameras outside the enumeration
func (p Photo) CameraID() (rovers.Camera, bool) {
	c, err := rovers.ParseCamera(p.Camera)
	if err != nil {
		return 0, false
	}
	return c, true
}

// RoverManifest pairs a rover with its manifest and load state
type RoverManifest struct {
	Rover    string   `json:"rover"`
	Slug     string   `json:"slug"`
	Loaded   bool     `json:"loaded"`
	Manifest Manifest `json:"manifest"`
}

// IndexPage represents the manifests page data
type IndexPage struct {
	Loading   bool
	Manifests []RoverManifest
}

// CameraOption is a camera checkbox on the rover page
type CameraOption struct {
	Name     string
	FullName string
	Selected bool
}

// RoverPage represents the rover images page data
type RoverPage struct {
	Rover    string
	Slug     string
	Date     string
	Manifest Manifest
	Cameras  []CameraOption
	Photos   []Photo
	Error    string
}
