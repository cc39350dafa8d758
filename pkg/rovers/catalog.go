package rovers

// CameraData describes a camera as mounted on a specific rover
type CameraData struct {
	ID       Camera `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
}

var curiosityCameras = []CameraData{
	{ID: FHAZ, Name: "FHAZ", FullName: "Front Hazard Avoidance Camera"},
	{ID: RHAZ, Name: "RHAZ", FullName: "Rear Hazard Avoidance Camera"},
	{ID: MAST, Name: "MAST", FullName: "Mast Camera"},
	{ID: CHEMCAM, Name: "CHEMCAM", FullName: "Chemistry and Camera Complex"},
	{ID: MAHLI, Name: "MAHLI", FullName: "Mars Hand Lens Imager"},
	{ID: MARDI, Name: "MARDI", FullName: "Mars Descent Imager"},
	{ID: NAVCAM, Name: "NAVCAM", FullName: "Navigation Camera"},
}

// Opportunity and Spirit carried the same instrument suite.
var merCameras = []CameraData{
	{ID: FHAZ, Name: "FHAZ", FullName: "Front Hazard Avoidance Camera"},
	{ID: RHAZ, Name: "RHAZ", FullName: "Rear Hazard Avoidance Camera"},
	{ID: NAVCAM, Name: "NAVCAM", FullName: "Navigation Camera"},
	{ID: PANCAM, Name: "PANCAM", FullName: "Panoramic Camera"},
	{ID: MINITES, Name: "MINITES", FullName: "Miniature Thermal Emission Spectrometer (Mini-TES)"},
}

// CamerasForRover returns the cameras mounted on r in display order.
// Values outside the declared rovers yield an empty slice.
func CamerasForRover(r Rover) []CameraData {
	var src []CameraData
	switch r {
	case Curiosity:
		src = curiosityCameras
	case Opportunity, Spirit:
		src = merCameras
	default:
		return []CameraData{}
	}

	out := make([]CameraData, len(src))
	copy(out, src)
	return out
}

// HasCamera reports whether c is part of r's catalog
func HasCamera(r Rover, c Camera) bool {
	for _, cam := range CamerasForRover(r) {
		if cam.ID == c {
			return true
		}
	}
	return false
}
