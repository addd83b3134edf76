// Package identity implements authentication and clinic administration.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/infrastructure/auth"
)

// Authentication failures are reported with a single code regardless of
// whether the identifier or the password was wrong.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// ErrClinicSuspended blocks login for users of a non-active clinic
var ErrClinicSuspended = shared.NewDomainError("CLINIC_SUSPENDED", "The clinic associated with this account is not active")

// AuthService handles login, registration and token lifecycle
type AuthService struct {
	users     identity.UserRepository
	clinics   identity.ClinicRepository
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users identity.UserRepository,
	clinics identity.ClinicRepository,
	tokens *auth.JWTService,
	blacklist auth.TokenBlacklist,
) *AuthService {
	return &AuthService{
		users:     users,
		clinics:   clinics,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// Login authenticates a user by username or email and issues tokens.
// The clinic binding embedded in the tokens comes from the stored user
// record, never from the request.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("USER_INACTIVE", "This account has been deactivated")
	}
	if user.ClinicID != nil {
		clinic, err := s.clinics.FindByID(ctx, *user.ClinicID)
		if err != nil {
			return nil, err
		}
		if !clinic.IsActive() {
			return nil, ErrClinicSuspended
		}
	}

	tokens, err := s.tokens.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		ClinicID: user.ClinicID,
	})
	if err != nil {
		return nil, err
	}

	user.RecordLogin(time.Now())
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return &LoginResponse{User: ToUserResponse(user), Tokens: tokens}, nil
}

// Register creates a staff account, optionally bound to a clinic. The
// clinic must exist and be active when given.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.Username, req.Email, req.Password, isolation.RoleStaff)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone

	if req.ClinicID != nil {
		clinic, err := s.clinics.FindByID(ctx, *req.ClinicID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("CLINIC_NOT_FOUND", "The specified clinic does not exist")
			}
			return nil, err
		}
		if !clinic.IsActive() {
			return nil, ErrClinicSuspended
		}
		user.AssignToClinic(clinic.ID)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Me returns the profile of the authenticated caller
func (s *AuthService) Me(ctx context.Context) (*UserResponse, error) {
	actx, ok := isolation.FromContext(ctx)
	if !ok || !actx.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, actx.UserID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new pair.
// Username and role are re-read from the user record so role changes
// take effect at the next refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("USER_INACTIVE", "This account has been deactivated")
	}

	tokens, err := s.tokens.RefreshTokenPair(req.RefreshToken, user.Username, string(user.Role))
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	return &LoginResponse{User: ToUserResponse(user), Tokens: tokens}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return shared.ErrUnauthorized
	}
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, ttl)
}

// checkRevocation rejects tokens that were individually revoked or
// issued before a user-wide revocation cutoff.
func (s *AuthService) checkRevocation(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return auth.ErrTokenBlacklisted
	}
	if claims.IssuedAt != nil {
		userRevoked, err := s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAt.Time)
		if err != nil {
			return err
		}
		if userRevoked {
			return auth.ErrTokenBlacklisted
		}
	}
	return nil
}
