package models

// EmergencyContact is a neighborhood emergency number. Loaded once per
// session, never modified by the client.
type EmergencyContact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Type         string `json:"type"` // "police", "fire", "medical", "security", ...
	Available24h bool   `json:"available24h"`
}
