package handler

import (
	appcatalog "github.com/clinisupply/backend/internal/application/catalog"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the shared product catalog
type CatalogHandler struct {
	BaseHandler
	products   *appcatalog.ProductService
	categories *appcatalog.CategoryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *appcatalog.ProductService, categories *appcatalog.CategoryService) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products", middleware.Authorize(isolation.KindProduct))
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/sku/:sku", h.GetProductBySKU)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	categories := rg.Group("/categories", middleware.Authorize(isolation.KindCategory))
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

// CreateProduct adds a product to the shared catalog
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid product payload")
		return
	}
	resp, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListProducts returns a page of catalog products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetProductBySKU returns one product by its SKU
func (h *CatalogHandler) GetProductBySKU(c *gin.Context) {
	resp, err := h.products.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateProduct patches a product
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid product payload")
		return
	}
	resp, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteProduct removes a product from the catalog
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateCategory adds a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid category payload")
		return
	}
	resp, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListCategories returns a page of categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var filter appcatalog.CategoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidPayload(c, err, "Invalid list parameters")
		return
	}
	page, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetCategory returns one category
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	resp, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateCategory patches a category
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appcatalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidPayload(c, err, "Invalid category payload")
		return
	}
	resp, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteCategory removes a category
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
