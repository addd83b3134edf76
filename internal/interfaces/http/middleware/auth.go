package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clinisupply/backend/internal/infrastructure/auth"
	"github.com/clinisupply/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// ClaimsKey is the gin context key holding the validated JWT claims
	ClaimsKey = "jwt_claims"

	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// AuthConfig holds configuration for the JWT authentication middleware
type AuthConfig struct {
	JWT *auth.JWTService
	// Blacklist is optional; when set, revoked tokens and user-wide
	// revocations are rejected.
	Blacklist auth.TokenBlacklist
}

// Authenticate validates the Bearer token and stores the claims on the
// request. It does not resolve the principal; that is the access-context
// resolver's job.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeader)
		if header == "" {
			abortAuth(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortAuth(c, dto.ErrCodeTokenInvalid, "Authorization header is not a Bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			abortAuth(c, dto.ErrCodeTokenInvalid, "Empty bearer token")
			return
		}

		claims, err := cfg.JWT.ValidateAccessToken(token)
		if err != nil {
			code := dto.ErrCodeTokenInvalid
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			abortAuth(c, code, "Invalid access token")
			return
		}

		if cfg.Blacklist != nil {
			ctx := c.Request.Context()
			revoked, err := cfg.Blacklist.IsRevoked(ctx, claims.ID)
			if err == nil && !revoked && claims.IssuedAt != nil {
				revoked, err = cfg.Blacklist.IsUserRevoked(ctx, claims.UserID, claims.IssuedAt.Time)
			}
			if err != nil {
				abortAuth(c, dto.ErrCodeInternal, "Token revocation check failed")
				return
			}
			if revoked {
				abortAuth(c, dto.ErrCodeTokenRevoked, "Token has been revoked")
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims returns the validated claims stored by Authenticate
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortAuth(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	if code == dto.ErrCodeInternal {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}
