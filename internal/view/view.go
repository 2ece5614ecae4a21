// Package view renders dashboard state as terminal output. Every function is
// a pure renderer of the data it is handed; no state lives here.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// MaxAlertsShown caps the alert panel. Older alerts stay in state but are
// not displayed.
const MaxAlertsShown = 5

// RenderCameraGrid writes the camera table with an online-count header.
func RenderCameraGrid(out io.Writer, cameras []models.Camera) {
	online := 0
	for _, cam := range cameras {
		if cam.Status == models.CameraOnline {
			online++
		}
	}
	fmt.Fprintf(out, "Cámaras del Vecindario — %d en línea\n\n", online)

	if len(cameras) == 0 {
		fmt.Fprintln(out, "No hay cámaras registradas")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tLOCATION\tSTATUS\tTYPE")
	fmt.Fprintln(w, "----\t--------\t------\t----")

	for _, cam := range cameras {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			cam.Name,
			cam.Location,
			StatusBadge(cam.Status),
			cam.Type,
		)
	}
	w.Flush()
}

// StatusBadge renders a camera status the way the feed tiles label it.
func StatusBadge(status string) string {
	if status == models.CameraOnline {
		return "● En línea"
	}
	return "● Fuera de línea"
}

// AlertIcon maps an alert type to its panel marker.
func AlertIcon(alertType string) string {
	switch alertType {
	case models.AlertEmergency:
		return "🚨"
	case models.AlertSuspicious:
		return "⚠️"
	case models.AlertInfo:
		return "ℹ️"
	default:
		return "📢"
	}
}

// FormatRelativeTime renders a creation timestamp the way the alert panel
// shows it: "Ahora", "Hace 5m", "Hace 3h", or the date for anything older
// than a day. A timestamp we cannot parse is shown as-is.
func FormatRelativeTime(createdAt string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}

	minutes := int(now.Sub(t).Minutes())
	hours := minutes / 60

	switch {
	case minutes < 1:
		return "Ahora"
	case minutes < 60:
		return fmt.Sprintf("Hace %dm", minutes)
	case hours < 24:
		return fmt.Sprintf("Hace %dh", hours)
	default:
		return t.Format("02/01/2006")
	}
}

// RenderAlertPanel writes the most recent alerts, newest first. Only the
// first MaxAlertsShown entries are rendered; the caller keeps the rest.
func RenderAlertPanel(out io.Writer, alerts []models.Alert, now time.Time) {
	fmt.Fprintf(out, "Alertas del Vecindario\n\n")

	if len(alerts) == 0 {
		fmt.Fprintln(out, "No hay alertas recientes")
		return
	}

	shown := alerts
	if len(shown) > MaxAlertsShown {
		shown = shown[:MaxAlertsShown]
	}

	for _, a := range shown {
		unread := ""
		if !a.Read {
			unread = " •"
		}
		fmt.Fprintf(out, "%s %s [%s]%s\n", AlertIcon(a.Type), a.UserName, a.Type, unread)
		fmt.Fprintf(out, "   %s\n", a.Message)
		fmt.Fprintf(out, "   📍 %s · %s\n", a.Location, FormatRelativeTime(a.CreatedAt, now))
	}
}

// ContactIcon maps a contact type to its marker.
func ContactIcon(contactType string) string {
	switch contactType {
	case "police":
		return "👮"
	case "fire":
		return "🚒"
	case "medical":
		return "🚑"
	case "security":
		return "🛡️"
	default:
		return "📞"
	}
}

// DialURI is the phone-number URI handed to the platform dialer.
func DialURI(phone string) string {
	return "tel:" + strings.ReplaceAll(phone, " ", "")
}

// RenderContacts writes the emergency contact list with dial URIs.
func RenderContacts(out io.Writer, contacts []models.EmergencyContact) {
	fmt.Fprintf(out, "Contactos de Emergencia\n\n")

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, ct := range contacts {
		badge := ""
		if ct.Available24h {
			badge = "24/7"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n",
			ContactIcon(ct.Type),
			ct.Name,
			ct.Phone,
			badge,
			DialURI(ct.Phone),
		)
	}
	w.Flush()
}
