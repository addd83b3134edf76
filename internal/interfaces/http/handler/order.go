package handler

import (
	apptrade "github.com/clinisupply/backend/internal/application/trade"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// OrderHandler exposes clinic purchase orders
type OrderHandler struct {
	BaseHandler
	orders *apptrade.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *apptrade.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", middleware.Authorize(isolation.KindOrder))
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/submit", h.Submit)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// Create builds a draft purchase order
func (h *OrderHandler) Create(c *gin.Context) {
	var req apptrade.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid order payload")
		return
	}
	resp, err := h.orders.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns a page of the clinic's orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter apptrade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns one order
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.orders.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Submit moves a draft order to pending
func (h *OrderHandler) Submit(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.orders.Submit(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an order that has not shipped
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.orders.Cancel(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
