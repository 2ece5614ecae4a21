package models

// Camera status values as reported by the API.
const (
	CameraOnline  = "online"
	CameraOffline = "offline"
)

// Camera represents a single neighborhood camera.
// GET /cameras returns a bare JSON array (no result wrapper).
type Camera struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"` // "online" | "offline"
	Type     string `json:"type"`   // "4G" | "WiFi"
	Color    string `json:"color"`  // display color for the feed tile
}
