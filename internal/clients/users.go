package clients

import (
	"context"
	"fmt"

	"delivery_tracker/internal/config"
)

// User mirrors the users directory payload. Couriers are users with
// the "courier" role registered in a city.
type User struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	CityID uint   `json:"city_id"`
}

type CreateUserInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	CityID uint   `json:"city_id"`
}

// UsersClient talks to the external user/courier directory.
type UsersClient struct {
	base
}

func NewUsersClient() *UsersClient {
	return &UsersClient{newBase("users", config.Env("USERS_URL", "http://localhost:8081"))}
}

// NewUsersClientAt is used by tests to point at an httptest server.
func NewUsersClientAt(baseURL string) *UsersClient {
	return &UsersClient{newBase("users", baseURL)}
}

func (c *UsersClient) GetUser(ctx context.Context, id uint) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// CouriersByCity lists couriers registered in a city.
func (c *UsersClient) CouriersByCity(ctx context.Context, cityID uint) ([]User, error) {
	var out struct {
		Data []User `json:"data"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/cities/%d/couriers", cityID), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *UsersClient) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.postJSON(ctx, "/users", input, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// FindOrCreateUser resolves a user by id when given, otherwise creates
// one in the directory. Used when registering a warehouse manager.
func (c *UsersClient) FindOrCreateUser(ctx context.Context, id uint, input CreateUserInput) (*User, error) {
	if id != 0 {
		return c.GetUser(ctx, id)
	}
	return c.CreateUser(ctx, input)
}
