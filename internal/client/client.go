package client

import (
	"errors"

	"github.com/go-resty/resty/v2"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// One sentinel error per remote operation. The API gives the client no
// reliable way to tell a network failure from a 4xx or a 5xx, so we don't
// pretend to: any non-success maps to the operation's single error.
var (
	ErrLoginFailed    = errors.New("login failed")
	ErrRegisterFailed = errors.New("registration failed")
)

// Client is a stateless wrapper over the Seguridad Urbana REST API. It holds
// no token; authenticated calls take the bearer token per request and the
// caller (the orchestrator) is responsible for having one.
type Client struct {
	HTTP *resty.Client
}

// New builds a client for the API at baseURL.
func New(baseURL string) *Client {
	r := resty.New()
	r.SetBaseURL(baseURL)

	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	return &Client{HTTP: r}
}

// LoginPayload matches the JSON body required by POST /auth/login
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload matches the JSON body required by POST /auth/register
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// Login authenticates with email and password and returns the session
// payload (bearer token plus user identity).
func (c *Client) Login(email, password string) (*models.SessionPayload, error) {
	var session models.SessionPayload

	resp, err := c.HTTP.R().
		SetBody(LoginPayload{Email: email, Password: password}).
		SetResult(&session).
		Post("/auth/login")

	if err != nil || resp.IsError() {
		return nil, ErrLoginFailed
	}

	return &session, nil
}

// Register creates a new neighbor account and returns a fresh session.
func (c *Client) Register(email, password, name, address string) (*models.SessionPayload, error) {
	var session models.SessionPayload

	resp, err := c.HTTP.R().
		SetBody(RegisterPayload{Email: email, Password: password, Name: name, Address: address}).
		SetResult(&session).
		Post("/auth/register")

	if err != nil || resp.IsError() {
		return nil, ErrRegisterFailed
	}

	return &session, nil
}
