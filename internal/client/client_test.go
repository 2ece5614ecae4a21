package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// newAPIServer fakes the Seguridad Urbana REST API.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body LoginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Email != "a@b.com" || body.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SessionPayload{
			Token: "tok-abc",
			User:  models.User{ID: "u1", Name: "Ana", Address: "Calle 1", Email: "a@b.com"},
		})
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body RegisterPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Name == "" || body.Address == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SessionPayload{
			Token: "tok-new",
			User:  models.User{ID: "u2", Name: body.Name, Address: body.Address, Email: body.Email},
		})
	})

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("GET /cameras", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Camera{
			{ID: "c1", Name: "Entrada Norte", Location: "Calle 10", Status: "online", Type: "WiFi", Color: "#1a3c5e"},
			{ID: "c2", Name: "Parque", Location: "Carrera 7", Status: "offline", Type: "4G", Color: "#2e4a2e"},
		})
	})

	mux.HandleFunc("GET /alerts", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.Alert{
			{ID: "a1", UserName: "Ana", Type: "info", Message: "Reunión vecinal", Location: "Salón comunal", CreatedAt: "2026-08-30T10:00:00Z"},
		})
	})

	mux.HandleFunc("POST /alerts", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		var body models.CreateAlertRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.Alert{
			ID: "a2", UserName: "Ana", Type: body.Type, Message: body.Message,
			Location: body.Location, CreatedAt: "2026-08-31T09:00:00Z",
		})
	})

	mux.HandleFunc("GET /emergency-contacts", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.EmergencyContact{
			{ID: "e1", Name: "Policía", Phone: "123", Type: "police", Available24h: true},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL)

	session, err := c.Login("a@b.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "Ana", session.User.Name)

	// Bad credentials map to the one login error, nothing more specific.
	_, err = c.Login("a@b.com", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestRegister(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL)

	session, err := c.Register("b@c.com", "secret2", "Berta", "Calle 2")
	require.NoError(t, err)
	require.Equal(t, "tok-new", session.Token)
	require.Equal(t, "Berta", session.User.Name)

	_, err = c.Register("b@c.com", "secret2", "", "")
	require.ErrorIs(t, err, ErrRegisterFailed)
}

func TestGetCameras(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL)

	cameras, err := c.GetCameras("tok-abc")
	require.NoError(t, err)
	require.Len(t, cameras, 2)
	require.Equal(t, "Entrada Norte", cameras[0].Name)
	require.Equal(t, "offline", cameras[1].Status)

	// A missing or stale token is just the generic fetch failure.
	_, err = c.GetCameras("stale")
	require.ErrorIs(t, err, ErrFetchCameras)
}

func TestGetAlerts(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL)

	alerts, err := c.GetAlerts("tok-abc")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, "Reunión vecinal", alerts[0].Message)
}

func TestCreateAlert(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL)

	alert, err := c.CreateAlert("tok-abc", models.CreateAlertRequest{
		Type: "emergency", Message: "Fire on 5th", Location: "Main St 12",
	})
	require.NoError(t, err)
	require.Equal(t, "emergency", alert.Type)
	require.Equal(t, "Fire on 5th", alert.Message)
	require.NotEmpty(t, alert.ID)

	_, err = c.CreateAlert("stale", models.CreateAlertRequest{Type: "info"})
	require.ErrorIs(t, err, ErrCreateAlert)
}

func TestGetEmergencyContacts(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL)

	contacts, err := c.GetEmergencyContacts("tok-abc")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	require.True(t, contacts[0].Available24h)
}

func TestTransportFailureMapsToSameError(t *testing.T) {
	srv := newAPIServer(t)
	url := srv.URL
	srv.Close()

	// A dead server and a 4xx are indistinguishable to callers.
	c := New(url)
	_, err := c.GetCameras("tok-abc")
	require.ErrorIs(t, err, ErrFetchCameras)
	_, err = c.Login("a@b.com", "secret1")
	require.ErrorIs(t, err, ErrLoginFailed)
}
