package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoginResult is the login payload. The backend puts token fields next
// to the envelope, not inside data, so this decodes from Response.Raw.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token. A rejected login is
// not an error: check Success and show Message.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.postJSON(ctx, "/auth/login/", body)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if len(resp.Raw) > 0 {
		if err := json.Unmarshal(resp.Raw, &result); err != nil {
			return nil, fmt.Errorf("unexpected login payload: %w", err)
		}
	}
	if result.Message == "" {
		result.Message = resp.Message
	}
	return &result, nil
}

// Profile fetches the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	resp, err := c.get(ctx, "/auth/profile/", nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeData(resp.Data, &user); err != nil {
		return nil, fmt.Errorf("unexpected profile payload: %w", err)
	}
	return &user, nil
}

// Logout tells the backend to invalidate the token. Best effort: the
// local session is cleared by the caller regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.postJSON(ctx, "/auth/logout/", nil)
	return err
}
