package api

import (
	"context"
	"fmt"

	"github.com/ndtran/police-portal/internal/model"
)

// LoginRequest carries the credentials submitted from the login form.
type LoginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

// LoginResponse is the backend's reply to a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID           int64      `json:"id"`
		Name         string     `json:"name"`
		Role         model.Role `json:"role"`
		ProfileImage string     `json:"profile_image"`
	} `json:"user"`
}

// Login authenticates against the portal backend and returns the
// authenticated principal with its bearer token. The client's token is
// updated on success so subsequent requests are authenticated.
func (c *Client) Login(ctx context.Context, req LoginRequest) (model.Principal, error) {
	var resp LoginResponse
	if err := c.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		return model.Principal{}, fmt.Errorf("logging in: %w", err)
	}

	c.SetToken(resp.Token)

	return model.Principal{
		ID:            resp.User.ID,
		Name:          resp.User.Name,
		Role:          resp.User.Role,
		ProfileImage:  resp.User.ProfileImage,
		Token:         resp.Token,
		Authenticated: true,
	}, nil
}

// RegisterRequest carries the fields for a new citizen account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new citizen account on the backend.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.Post(ctx, "/api/auth/register", req, nil); err != nil {
		return fmt.Errorf("registering: %w", err)
	}
	return nil
}
