package clients

import (
	"context"
	"fmt"

	"delivery_tracker/internal/config"
)

// Coordinate mirrors the geo service payload.
type Coordinate struct {
	ID         uint    `json:"ID"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CityID     uint    `json:"city_id"`
	Street     string  `json:"street"`
	PostalCode string  `json:"postal_code"`
}

type CreateCoordinateInput struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CityID     uint    `json:"city_id,omitempty"`
	Street     string  `json:"street,omitempty"`
	PostalCode string  `json:"postal_code,omitempty"`
	// UserID tags the coordinate to a courier when set.
	UserID uint `json:"user_id,omitempty"`
}

// CoordinatesClient talks to the geo service.
type CoordinatesClient struct {
	base
}

func NewCoordinatesClient() *CoordinatesClient {
	return &CoordinatesClient{newBase("coordinates", config.Env("GEO_URL", "http://localhost:8083"))}
}

func NewCoordinatesClientAt(baseURL string) *CoordinatesClient {
	return &CoordinatesClient{newBase("coordinates", baseURL)}
}

// Create is idempotent on (latitude, longitude): the geo service
// returns the existing row on a duplicate pair.
func (c *CoordinatesClient) Create(ctx context.Context, input CreateCoordinateInput) (*Coordinate, error) {
	var out struct {
		Coordinate Coordinate `json:"coordinate"`
	}
	if err := c.postJSON(ctx, "/coordinates", input, &out); err != nil {
		return nil, err
	}
	return &out.Coordinate, nil
}

func (c *CoordinatesClient) GetByID(ctx context.Context, id uint) (*Coordinate, error) {
	var out struct {
		Coordinate Coordinate `json:"coordinate"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/coordinates/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.Coordinate, nil
}

// LatestByUser fetches a courier's most recently reported coordinate.
func (c *CoordinatesClient) LatestByUser(ctx context.Context, userID uint) (*Coordinate, error) {
	var out struct {
		Coordinate Coordinate `json:"coordinate"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d/coordinates/latest", userID), &out); err != nil {
		return nil, err
	}
	return &out.Coordinate, nil
}
