package handler

import (
	appidentity "github.com/clinisupply/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// ClinicHandler exposes clinic administration endpoints
type ClinicHandler struct {
	BaseHandler
	clinics *appidentity.ClinicService
}

// NewClinicHandler creates a new ClinicHandler
func NewClinicHandler(clinics *appidentity.ClinicService) *ClinicHandler {
	return &ClinicHandler{clinics: clinics}
}

// RegisterRoutes registers clinic routes. The service itself enforces
// that listing and mutation are admin-only.
func (h *ClinicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clinics := rg.Group("/clinics")
	{
		clinics.POST("", h.Create)
		clinics.GET("", h.List)
		clinics.GET("/:id", h.GetByID)
		clinics.PUT("/:id", h.Update)
		clinics.POST("/:id/suspend", h.Suspend)
	}
}

// Create provisions a new clinic
func (h *ClinicHandler) Create(c *gin.Context) {
	var req appidentity.CreateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid clinic payload")
		return
	}
	resp, err := h.clinics.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a page of clinics
func (h *ClinicHandler) List(c *gin.Context) {
	var filter appidentity.ClinicListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.clinics.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one clinic
func (h *ClinicHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.clinics.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update patches a clinic's profile
func (h *ClinicHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appidentity.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid clinic payload")
		return
	}
	resp, err := h.clinics.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Suspend suspends a clinic
func (h *ClinicHandler) Suspend(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.clinics.Suspend(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
