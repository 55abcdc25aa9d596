package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/client/client"
)

// SessionClient is the part of the HTTP client that owns the session.
type SessionClient interface {
	Caller
	Register(ctx context.Context, req api.RegisterRequest) (client.TokenPair, error)
	Login(ctx context.Context, email, password string) (client.TokenPair, error)
	Refresh(ctx context.Context) (client.TokenPair, error)
	Logout(ctx context.Context) error
	Claims() (client.Claims, error)
}

// AuthService covers the account operations of the CLI.
type AuthService interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	// Profile asks the backend who the current token belongs to.
	Profile(ctx context.Context) (*api.Profile, error)
	// WhoAmI decodes the local access token without a network call.
	WhoAmI() (client.Claims, error)
}

type authService struct {
	client SessionClient
}

func NewAuthService(c SessionClient) AuthService {
	return &authService{client: c}
}

func (s *authService) Register(ctx context.Context, req api.RegisterRequest) error {
	_, err := s.client.Register(ctx, req)
	return err
}

func (s *authService) Login(ctx context.Context, email string, password []byte) error {
	_, err := s.client.Login(ctx, email, string(password))
	return err
}

func (s *authService) Logout(ctx context.Context) error {
	return s.client.Logout(ctx)
}

func (s *authService) Refresh(ctx context.Context) error {
	_, err := s.client.Refresh(ctx)
	return err
}

func (s *authService) Profile(ctx context.Context) (*api.Profile, error) {
	var p api.Profile
	if err := s.client.DoJSON(ctx, http.MethodGet, api.PathProfile, nil, &p); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return &p, nil
}

func (s *authService) WhoAmI() (client.Claims, error) {
	return s.client.Claims()
}
