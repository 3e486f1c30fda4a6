package gateway

import (
	"context"

	"cinebook/internal/models"
)

// Login exchanges credentials for a session token and user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	req := models.LoginRequest{Email: email, Password: password}

	var result models.LoginResponse
	if err := c.do(ctx, "login", "POST", "/Auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
