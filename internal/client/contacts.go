package client

import (
	"errors"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

var ErrFetchContacts = errors.New("failed to fetch emergency contacts")

// GetEmergencyContacts lists the neighborhood emergency numbers.
func (c *Client) GetEmergencyContacts(token string) ([]models.EmergencyContact, error) {
	var contacts []models.EmergencyContact

	resp, err := c.HTTP.R().
		SetAuthToken(token).
		SetResult(&contacts).
		Get("/emergency-contacts")

	if err != nil || resp.IsError() {
		return nil, ErrFetchContacts
	}

	return contacts, nil
}
