package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darksuryansh/PricePilot/internal/domain"
	apperrors "github.com/darksuryansh/PricePilot/pkg/errors"
)

// AuthBackend is the slice of the API client the auth service needs.
type AuthBackend interface {
	Register(ctx context.Context, email, password, name string) (*domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (*domain.AuthResult, error)
	GoogleAuth(ctx context.Context, idToken string) (*domain.AuthResult, error)
	Me(ctx context.Context, token string) (*domain.AuthUser, error)
	Logout(ctx context.Context, token string) error
}

// TokenStore persists the single auth token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// AuthService manages the login session and the persisted token.
type AuthService struct {
	backend AuthBackend
	store   TokenStore
	logger  *slog.Logger
}

func NewAuthService(backend AuthBackend, store TokenStore, logger *slog.Logger) *AuthService {
	return &AuthService{backend: backend, store: store, logger: logger}
}

// Login exchanges credentials for a session and persists the token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, result.Token)
	return result, nil
}

// Register creates an account and persists the session token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.AuthResult, error) {
	result, err := s.backend.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, result.Token)
	return result, nil
}

// GoogleAuth exchanges a Google ID token for a session and persists it.
func (s *AuthService) GoogleAuth(ctx context.Context, idToken string) (*domain.AuthResult, error) {
	result, err := s.backend.GoogleAuth(ctx, idToken)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, result.Token)
	return result, nil
}

// Restore rebuilds the session from a persisted token: the token's expiry
// is checked locally (unverified parse, no server round trip) and only a
// live token is sent to the backend for the profile.
func (s *AuthService) Restore(ctx context.Context) (*domain.AuthUser, string, error) {
	token, err := s.store.Load()
	if err != nil {
		return nil, "", fmt.Errorf("load stored token: %w", err)
	}
	if token == "" {
		return nil, "", apperrors.Unauthorized("no stored session")
	}
	if tokenExpired(token) {
		if err := s.store.Clear(); err != nil {
			s.logger.WarnContext(ctx, "failed to clear expired token", slog.String("error", err.Error()))
		}
		return nil, "", apperrors.Unauthorized("stored session expired")
	}

	user, err := s.backend.Me(ctx, token)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout invalidates the session server-side and clears the stored token.
// The token is cleared even when the server call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	token, err := s.store.Load()
	if err == nil && token != "" {
		if err := s.backend.Logout(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "server-side logout failed", slog.String("error", err.Error()))
		}
	}
	return s.store.Clear()
}

func (s *AuthService) persist(ctx context.Context, token string) {
	if err := s.store.Save(token); err != nil {
		s.logger.WarnContext(ctx, "failed to persist auth token", slog.String("error", err.Error()))
	}
}

// tokenExpired reports whether the JWT's exp claim is in the past. The
// signature is not verified; the backend remains the authority, this only
// avoids sending tokens that are certainly dead. Unparseable tokens count
// as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
