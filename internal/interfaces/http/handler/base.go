// Package handler wires the application services to gin routes.
package handler

import (
	"errors"
	"net/http"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/interfaces/http/dto"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.respondError(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InvalidPayload sends a 400 response for a binding failure. Field-level
// validation errors list each offending field; anything else falls back
// to the plain message.
func (h *BaseHandler) InvalidPayload(c *gin.Context, err error, message string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest,
			middleware.FormatValidationErrors(err, c.GetString(middleware.RequestIDKey)))
		return
	}
	h.BadRequest(c, message)
}

// HandleError maps an application error onto an HTTP response. Domain
// errors carry their own code; anything else is an opaque 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.respondError(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	h.respondError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Internal server error")
}

func (h *BaseHandler) respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(middleware.RequestIDKey)))
}

// pathID parses the :id path parameter
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid resource ID")
		return uuid.Nil, false
	}
	return id, true
}

// clinicHint parses the optional clinic_id query parameter. Admins use it
// to name the clinic they are operating on; for everyone else the
// application layer pins the caller's own clinic regardless.
func (h *BaseHandler) clinicHint(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("clinic_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid clinic_id")
		return nil, false
	}
	return &id, true
}
