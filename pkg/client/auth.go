package client

import (
	"context"

	"github.com/google/uuid"
)

// AuthService handles authentication and session management.
type AuthService struct {
	client *Client
}

// LoginRequest carries the credentials for a login attempt. Identifier
// accepts a username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// RegisterRequest creates a new user account.
type RegisterRequest struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	ClinicID  *uuid.UUID `json:"clinic_id,omitempty"`
}

// Login authenticates and stores the access token on the client for
// subsequent requests.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var session Session
	if err := s.client.post(ctx, "/auth/login", req, &session); err != nil {
		return nil, err
	}
	if session.Tokens != nil {
		s.client.SetToken(session.Tokens.AccessToken)
	}
	return &session, nil
}

// Register creates a user account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := s.client.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges a refresh token for a new token pair and stores the
// new access token on the client.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var session Session
	if err := s.client.post(ctx, "/auth/refresh", body, &session); err != nil {
		return nil, err
	}
	if session.Tokens != nil {
		s.client.SetToken(session.Tokens.AccessToken)
	}
	return &session, nil
}

// Me returns the authenticated user.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	if _, err := s.client.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the current token and clears it from the client.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.post(ctx, "/auth/logout", nil, nil); err != nil {
		return err
	}
	s.client.SetToken("")
	return nil
}
