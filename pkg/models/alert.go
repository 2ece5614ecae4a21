package models

// Alert types accepted by POST /alerts.
const (
	AlertSuspicious = "suspicious"
	AlertEmergency  = "emergency"
	AlertInfo       = "info"
)

// Alert is one community alert, as returned by GET /alerts and pushed on the
// "newAlert" event.
type Alert struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Type     string `json:"type"` // "suspicious" | "emergency" | "info"
	Message  string `json:"message"`
	Location string `json:"location"`
	// ISO 8601 creation time. Kept as a string; the server owns the clock and
	// we only ever format it for display.
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

// CreateAlertRequest is the body for POST /alerts.
type CreateAlertRequest struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Location string `json:"location"`
}
