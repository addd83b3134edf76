package handler

import (
	appidentity "github.com/clinisupply/backend/internal/application/identity"
	"github.com/clinisupply/backend/internal/interfaces/http/dto"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes authentication endpoints
type AuthHandler struct {
	BaseHandler
	auth      *appidentity.AuthService
	protected []gin.HandlerFunc
}

// NewAuthHandler creates a new AuthHandler. The protected chain is the
// middleware applied to endpoints that require an authenticated caller.
func NewAuthHandler(auth *appidentity.AuthService, protected ...gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{auth: auth, protected: protected}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/auth")
	{
		public.POST("/login", h.Login)
		public.POST("/register", h.Register)
		public.POST("/refresh", h.Refresh)
	}

	private := rg.Group("/auth", h.protected...)
	{
		private.GET("/me", h.Me)
		private.POST("/logout", h.Logout)
	}
}

// Login authenticates a user and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid login payload")
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req appidentity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid registration payload")
		return
	}
	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid refresh payload")
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.auth.Me(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout revokes the caller's current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.respondError(c, dto.GetHTTPStatus(dto.ErrCodeUnauthorized), dto.ErrCodeUnauthorized, "Not authenticated")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
