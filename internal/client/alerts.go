package client

import (
	"errors"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

var (
	ErrFetchAlerts = errors.New("failed to fetch alerts")
	ErrCreateAlert = errors.New("failed to create alert")
)

// GetAlerts lists community alerts, most recent first.
func (c *Client) GetAlerts(token string) ([]models.Alert, error) {
	var alerts []models.Alert

	resp, err := c.HTTP.R().
		SetAuthToken(token).
		SetResult(&alerts).
		Get("/alerts")

	if err != nil || resp.IsError() {
		return nil, ErrFetchAlerts
	}

	return alerts, nil
}

// CreateAlert posts a new community alert and returns the created entry.
// The server fills in id, userName, createdAt and the read flag.
func (c *Client) CreateAlert(token string, req models.CreateAlertRequest) (*models.Alert, error) {
	var alert models.Alert

	resp, err := c.HTTP.R().
		SetAuthToken(token).
		SetBody(req).
		SetResult(&alert).
		Post("/alerts")

	if err != nil || resp.IsError() {
		return nil, ErrCreateAlert
	}

	return &alert, nil
}
