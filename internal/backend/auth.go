package backend

import (
	"context"

	"github.com/darksuryansh/PricePilot/internal/domain"
)

// Register creates an account and returns a session token.
func (c *Client) Register(ctx context.Context, email, password, name string) (*domain.AuthResult, error) {
	body := domain.Credentials{Email: email, Password: password, Name: name}
	var out domain.AuthResult
	if err := c.postJSON(ctx, "register", "/api/auth/register", body, "Registration failed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	body := domain.Credentials{Email: email, Password: password}
	var out domain.AuthResult
	if err := c.postJSON(ctx, "login", "/api/auth/login", body, "Login failed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleAuth exchanges a Google ID token for a session token.
func (c *Client) GoogleAuth(ctx context.Context, idToken string) (*domain.AuthResult, error) {
	body := map[string]string{"token": idToken}
	var out domain.AuthResult
	if err := c.postJSON(ctx, "google_auth", "/api/auth/google", body, "Google authentication failed", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*domain.AuthUser, error) {
	var out struct {
		User domain.AuthUser `json:"user"`
	}
	if err := c.getJSON(ctx, "me", "/api/auth/me", "Failed to fetch user", &out, withBearer(token)); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout invalidates the token server-side.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.postJSON(ctx, "logout", "/api/auth/logout", struct{}{}, "Logout failed", nil, withBearer(token))
}
