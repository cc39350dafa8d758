package rovers

import (
	"errors"
	"fmt"
	"strings"
)

// Camera identifies a physical imaging instrument. Ordinals are encoded as
// numbers in JSON, so new cameras go at the end.
type Camera int

const (
	FHAZ    Camera = iota // Front Hazard Avoidance Camera
	RHAZ                  // Rear Hazard Avoidance Camera
	MAST                  // Mast Camera
	MAHLI                 // Mars Hand Lens Imager
	MARDI                 // Mars Descent Imager
	NAVCAM                // Navigation Camera
	PANCAM                // Panoramic Camera
	MINITES               // Miniature Thermal Emission Spectrometer (Mini-TES)
	CHEMCAM               // Chemistry and Camera Complex
)

// ErrUnknownCamera is returned when a value does not name a known camera
var ErrUnknownCamera = errors.New("unknown camera")

var cameraCodes = [...]string{"FHAZ", "RHAZ", "MAST", "MAHLI", "MARDI", "NAVCAM", "PANCAM", "MINITES", "CHEMCAM"}

// Cameras returns every camera in ordinal order
func Cameras() []Camera {
	out := make([]Camera, len(cameraCodes))
	for i := range cameraCodes {
		out[i] = Camera(i)
	}
	return out
}

// Valid reports whether c is a declared camera
func (c Camera) Valid() bool {
	return c >= FHAZ && c <= CHEMCAM
}

func (c Camera) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Camera(%d)", int(c))
	}
	return cameraCodes[c]
}

// ParseCamera resolves a short camera code such as "navcam"
func ParseCamera(s string) (Camera, error) {
	s = strings.TrimSpace(s)
	for i, code := range cameraCodes {
		if strings.EqualFold(s, code) {
			return Camera(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCamera, s)
}
