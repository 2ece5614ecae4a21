package view

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

func TestAlertPanelShowsOnlyFirstFive(t *testing.T) {
	var alerts []models.Alert
	for i := 1; i <= 7; i++ {
		alerts = append(alerts, models.Alert{
			ID:       fmt.Sprintf("a%d", i),
			UserName: "Ana",
			Type:     models.AlertInfo,
			Message:  fmt.Sprintf("mensaje-%d", i),
			Location: "Calle 1",
		})
	}

	var buf bytes.Buffer
	RenderAlertPanel(&buf, alerts, time.Now())
	out := buf.String()

	for i := 1; i <= 5; i++ {
		require.Contains(t, out, fmt.Sprintf("mensaje-%d", i))
	}
	// Entries 6 and 7 stay in state but are not rendered.
	require.NotContains(t, out, "mensaje-6")
	require.NotContains(t, out, "mensaje-7")
}

func TestAlertPanelEmptyState(t *testing.T) {
	var buf bytes.Buffer
	RenderAlertPanel(&buf, nil, time.Now())
	require.Contains(t, buf.String(), "No hay alertas recientes")
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		createdAt string
		want      string
	}{
		{"2026-08-31T11:59:30Z", "Ahora"},
		{"2026-08-31T11:55:00Z", "Hace 5m"},
		{"2026-08-31T09:00:00Z", "Hace 3h"},
		{"2026-08-29T12:00:00Z", "29/08/2026"},
		{"not-a-timestamp", "not-a-timestamp"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatRelativeTime(tc.createdAt, now), "createdAt=%v", tc.createdAt)
	}
}

func TestCameraGridOnlineCount(t *testing.T) {
	cameras := []models.Camera{
		{ID: "c1", Name: "Entrada", Status: models.CameraOnline, Type: "WiFi"},
		{ID: "c2", Name: "Parque", Status: models.CameraOffline, Type: "4G"},
		{ID: "c3", Name: "Salida", Status: models.CameraOnline, Type: "WiFi"},
	}

	var buf bytes.Buffer
	RenderCameraGrid(&buf, cameras)
	out := buf.String()

	require.Contains(t, out, "2 en línea")
	require.Contains(t, out, "● En línea")
	require.Contains(t, out, "● Fuera de línea")
}

func TestCameraGridEmptyState(t *testing.T) {
	var buf bytes.Buffer
	RenderCameraGrid(&buf, nil)
	require.Contains(t, buf.String(), "0 en línea")
	require.Contains(t, buf.String(), "No hay cámaras registradas")
}

func TestDialURI(t *testing.T) {
	require.Equal(t, "tel:123", DialURI("123"))
	require.Equal(t, "tel:+573001234567", DialURI("+57 300 123 4567"))
}

func TestRenderContacts(t *testing.T) {
	contacts := []models.EmergencyContact{
		{ID: "e1", Name: "Policía", Phone: "123", Type: "police", Available24h: true},
		{ID: "e2", Name: "Vigilante", Phone: "300 111 2222", Type: "security"},
	}

	var buf bytes.Buffer
	RenderContacts(&buf, contacts)
	out := buf.String()

	require.Contains(t, out, "Policía")
	require.Contains(t, out, "24/7")
	require.Contains(t, out, "tel:3001112222")
}
