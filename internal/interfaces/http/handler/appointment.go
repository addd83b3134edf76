package handler

import (
	appsched "github.com/clinisupply/backend/internal/application/scheduling"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes clinic appointments
type AppointmentHandler struct {
	BaseHandler
	appointments *appsched.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointments *appsched.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// RegisterRoutes registers appointment routes
func (h *AppointmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments", middleware.Authorize(isolation.KindAppointment))
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/agenda", h.Agenda)
		appointments.GET("/:id", h.GetByID)
		appointments.PUT("/:id", h.Update)
		appointments.POST("/:id/confirm", h.Confirm)
		appointments.POST("/:id/cancel", h.Cancel)
	}
}

// Create schedules an appointment
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appsched.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid appointment payload")
		return
	}
	resp, err := h.appointments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a page of the clinic's appointments
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter appsched.AppointmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.appointments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Agenda returns the clinic's appointments in a date window
func (h *AppointmentHandler) Agenda(c *gin.Context) {
	var req appsched.AgendaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid agenda window")
		return
	}
	items, err := h.appointments.Agenda(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetByID returns one appointment
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.appointments.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update reschedules or annotates an appointment
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	var req appsched.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid appointment payload")
		return
	}
	resp, err := h.appointments.Update(c.Request.Context(), id, hint, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm confirms a scheduled appointment
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.appointments.Confirm(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an appointment
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.appointments.Cancel(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
