package client

import (
	"errors"

	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

var ErrFetchCameras = errors.New("failed to fetch cameras")

// GetCameras lists all neighborhood cameras.
func (c *Client) GetCameras(token string) ([]models.Camera, error) {
	var cameras []models.Camera

	resp, err := c.HTTP.R().
		SetAuthToken(token).
		SetResult(&cameras).
		Get("/cameras")

	if err != nil || resp.IsError() {
		return nil, ErrFetchCameras
	}

	return cameras, nil
}
