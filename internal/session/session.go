package session

import (
	"github.com/Frozzzo/SeguridadUrbana/internal/client"
	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// Session holds the authenticated identity and bearer token for the lifetime
// of one process. It is constructed once at startup and passed explicitly to
// whatever needs it; there is no package-level singleton.
type Session struct {
	api   *client.Client
	token string
	user  *models.User
}

func New(api *client.Client) *Session {
	return &Session{api: api}
}

// Resume restores a previously persisted session without a remote call.
func (s *Session) Resume(token string, user models.User) {
	s.token = token
	s.user = &user
}

// Login authenticates and populates the session. On failure the session is
// left exactly as it was.
func (s *Session) Login(email, password string) error {
	payload, err := s.api.Login(email, password)
	if err != nil {
		return err
	}

	s.token = payload.Token
	s.user = &payload.User
	return nil
}

// Register creates a new account and populates the session from the returned
// payload. Like Login, a failure mutates nothing.
func (s *Session) Register(email, password, name, address string) error {
	payload, err := s.api.Register(email, password, name, address)
	if err != nil {
		return err
	}

	s.token = payload.Token
	s.user = &payload.User
	return nil
}

// Logout clears the session unconditionally. There is no remote logout; an
// abandoned token simply expires server-side.
func (s *Session) Logout() {
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	return s.token
}

// User returns the current identity, or nil when logged out.
func (s *Session) User() *models.User {
	return s.user
}

// LoggedIn reports whether a bearer token is present.
func (s *Session) LoggedIn() bool {
	return s.token != ""
}
