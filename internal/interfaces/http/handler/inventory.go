package handler

import (
	appinv "github.com/clinisupply/backend/internal/application/inventory"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes clinic inventory items and movements
type InventoryHandler struct {
	BaseHandler
	items     *appinv.ItemService
	movements *appinv.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(items *appinv.ItemService, movements *appinv.MovementService) *InventoryHandler {
	return &InventoryHandler{items: items, movements: movements}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory/items", middleware.Authorize(isolation.KindInventoryItem))
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/product/:id", h.GetItemByProduct)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
	}

	movements := rg.Group("/inventory/movements", middleware.Authorize(isolation.KindInventoryMovement))
	{
		movements.POST("", h.RecordMovement)
		movements.GET("", h.ListMovements)
		movements.GET("/:id", h.GetMovement)
	}
}

// CreateItem stocks a product for the caller's clinic
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req appinv.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid item payload")
		return
	}
	resp, err := h.items.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListItems returns a page of the clinic's inventory
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var filter appinv.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.items.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetItem returns one inventory item
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.items.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetItemByProduct returns the clinic's item for a catalog product
func (h *InventoryHandler) GetItemByProduct(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.items.GetByProduct(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem patches thresholds and location on an item
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	var req appinv.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid item payload")
		return
	}
	resp, err := h.items.Update(c.Request.Context(), id, hint, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordMovement applies a stock movement to an item
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req appinv.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid movement payload")
		return
	}
	resp, err := h.movements.Record(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListMovements returns a page of the clinic's stock movements
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter appinv.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.movements.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetMovement returns one stock movement
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	hint, ok := h.clinicHint(c)
	if !ok {
		return
	}
	resp, err := h.movements.GetByID(c.Request.Context(), id, hint)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
