package models

// User is the authenticated neighbor account.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// SessionPayload is the body returned by POST /auth/login and POST /auth/register.
type SessionPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
