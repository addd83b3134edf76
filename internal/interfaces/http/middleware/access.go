package middleware

import (
	"errors"
	"net/http"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/infrastructure/logger"
	"github.com/clinisupply/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResolveAccessContext loads the authenticated principal from storage and
// builds the request's access context. Role and clinic binding always come
// from the user record, never from token claims: a stale token cannot keep
// privileges the database no longer grants. Unresolvable principals are a
// 401, never an anonymous pass-through.
func ResolveAccessContext(users identity.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortAuth(c, dto.ErrCodeUnauthorized, "Not authenticated")
			return
		}
		userID, err := claims.GetUserUUID()
		if err != nil {
			abortAuth(c, dto.ErrCodeTokenInvalid, "Invalid token subject")
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortAuth(c, dto.ErrCodeUnauthorized, "Unknown principal")
				return
			}
			logger.L(c.Request.Context()).Error("access context resolution failed",
				zap.Error(err), zap.String("user_id", userID.String()))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "Failed to resolve principal", c.GetString(RequestIDKey)))
			return
		}
		if !user.IsActive() {
			abortAuth(c, dto.ErrCodeUnauthorized, "Account is disabled")
			return
		}

		actx := isolation.AccessContext{
			UserID:   user.ID,
			Role:     user.Role,
			ClinicID: user.ClinicID,
		}
		ctx := isolation.WithAccessContext(c.Request.Context(), actx)
		if user.ClinicID != nil {
			ctx, _ = logger.WithClinicID(ctx, logger.FromContext(ctx), user.ClinicID.String())
		}
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), user.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authorize gates a route group on one resource kind. The decision is
// stashed on the request so the application layer can honor it without
// re-deriving scope.
func Authorize(kind isolation.ResourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actx, ok := isolation.FromContext(c.Request.Context())
		if !ok || !actx.Authenticated() {
			abortAuth(c, dto.ErrCodeUnauthorized, "Not authenticated")
			return
		}

		decision := isolation.Check(actx, kind)
		if !decision.Allow {
			code := dto.ErrCodeForbidden
			message := "Access to this resource is forbidden"
			if _, bound := actx.Clinic(); !bound && !actx.IsAdmin() && kind.ClinicScoped() {
				code = "CLINIC_UNRESOLVED"
				message = "User is not assigned to a clinic"
			}
			c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
				dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
			return
		}

		c.Request = c.Request.WithContext(isolation.WithDecision(c.Request.Context(), decision))
		c.Next()
	}
}
