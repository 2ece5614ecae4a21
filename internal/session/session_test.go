package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Frozzzo/SeguridadUrbana/internal/client"
	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body client.LoginPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SessionPayload{
			Token: "tok-abc",
			User:  models.User{ID: "u1", Name: "Ana", Address: "Calle 1", Email: body.Email},
		})
	})

	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SessionPayload{
			Token: "tok-new",
			User:  models.User{ID: "u2", Name: "Berta", Address: "Calle 2", Email: "b@c.com"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginPopulatesSession(t *testing.T) {
	srv := newAuthServer(t)
	s := New(client.New(srv.URL))

	require.False(t, s.LoggedIn())
	require.NoError(t, s.Login("a@b.com", "secret1"))
	require.True(t, s.LoggedIn())
	require.Equal(t, "tok-abc", s.Token())
	require.Equal(t, "Ana", s.User().Name)
}

func TestFailedLoginMutatesNothing(t *testing.T) {
	srv := newAuthServer(t)
	s := New(client.New(srv.URL))

	// Fresh session stays empty.
	require.Error(t, s.Login("a@b.com", "wrong"))
	require.False(t, s.LoggedIn())
	require.Nil(t, s.User())

	// An existing session survives a failed re-login untouched.
	require.NoError(t, s.Login("a@b.com", "secret1"))
	require.Error(t, s.Login("a@b.com", "wrong"))
	require.Equal(t, "tok-abc", s.Token())
	require.Equal(t, "Ana", s.User().Name)
}

func TestRegisterPopulatesSession(t *testing.T) {
	srv := newAuthServer(t)
	s := New(client.New(srv.URL))

	require.NoError(t, s.Register("b@c.com", "secret2", "Berta", "Calle 2"))
	require.Equal(t, "tok-new", s.Token())
	require.Equal(t, "Berta", s.User().Name)
}

func TestLogoutClearsUnconditionally(t *testing.T) {
	srv := newAuthServer(t)
	s := New(client.New(srv.URL))

	require.NoError(t, s.Login("a@b.com", "secret1"))
	s.Logout()
	require.False(t, s.LoggedIn())
	require.Empty(t, s.Token())
	require.Nil(t, s.User())

	// Logging out twice is fine.
	s.Logout()
	require.False(t, s.LoggedIn())
}

func TestResume(t *testing.T) {
	s := New(nil)
	s.Resume("saved-token", models.User{ID: "u1", Name: "Ana"})
	require.True(t, s.LoggedIn())
	require.Equal(t, "saved-token", s.Token())
	require.Equal(t, "Ana", s.User().Name)
}
