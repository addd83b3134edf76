package catalog

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/catalog"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                   uuid.UUID       `json:"id"`
	SupplierID           uuid.UUID       `json:"supplier_id"`
	CategoryID           uuid.UUID       `json:"category_id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	SKU                  string          `json:"sku"`
	Description          string          `json:"description,omitempty"`
	Brand                string          `json:"brand,omitempty"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Unit                 string          `json:"unit"`
	UnitsPerPackage      int             `json:"units_per_package"`
	Available            bool            `json:"available"`
	StockSupplier        int             `json:"stock_supplier"`
	IsFeatured           bool            `json:"is_featured"`
	IsNew                bool            `json:"is_new"`
	RequiresPrescription bool            `json:"requires_prescription"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its API shape
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		SupplierID:           p.SupplierID,
		CategoryID:           p.CategoryID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		SKU:                  p.SKU,
		Description:          p.Description,
		Brand:                p.Brand,
		BasePrice:            p.BasePrice,
		Unit:                 string(p.Unit),
		UnitsPerPackage:      p.UnitsPerPackage,
		Available:            p.Available,
		StockSupplier:        p.StockSupplier,
		IsFeatured:           p.IsFeatured,
		IsNew:                p.IsNew,
		RequiresPrescription: p.RequiresPrescription,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// CreateProductRequest adds a product to the shared catalog
type CreateProductRequest struct {
	SupplierID           uuid.UUID       `json:"supplier_id" binding:"required"`
	CategoryID           uuid.UUID       `json:"category_id" binding:"required"`
	Name                 string          `json:"name" binding:"required,min=1,max=200"`
	Slug                 string          `json:"slug" binding:"required,min=1,max=100"`
	SKU                  string          `json:"sku" binding:"required,min=1,max=100"`
	Description          string          `json:"description"`
	Brand                string          `json:"brand" binding:"max=100"`
	BasePrice            decimal.Decimal `json:"base_price" binding:"required"`
	Unit                 string          `json:"unit" binding:"required,oneof=unit box kg liter"`
	UnitsPerPackage      int             `json:"units_per_package" binding:"omitempty,min=1"`
	RequiresPrescription bool            `json:"requires_prescription"`
}

// UpdateProductRequest modifies a catalog product
type UpdateProductRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description          *string          `json:"description"`
	Brand                *string          `json:"brand" binding:"omitempty,max=100"`
	BasePrice            *decimal.Decimal `json:"base_price"`
	Unit                 *string          `json:"unit" binding:"omitempty,oneof=unit box kg liter"`
	UnitsPerPackage      *int             `json:"units_per_package" binding:"omitempty,min=1"`
	Available            *bool            `json:"available"`
	StockSupplier        *int             `json:"stock_supplier" binding:"omitempty,min=0"`
	IsFeatured           *bool            `json:"is_featured"`
	IsNew                *bool            `json:"is_new"`
	RequiresPrescription *bool            `json:"requires_prescription"`
}

// ProductListFilter represents filter options for product listing
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Unit       string     `form:"unit" binding:"omitempty,oneof=unit box kg liter"`
	Available  *bool      `form:"available"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f ProductListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.CategoryID != nil {
		filter.Filters["category_id"] = *f.CategoryID
	}
	if f.SupplierID != nil {
		filter.Filters["supplier_id"] = *f.SupplierID
	}
	if f.Unit != "" {
		filter.Filters["unit"] = f.Unit
	}
	if f.Available != nil {
		filter.Filters["available"] = *f.Available
	}
	return filter
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCategoryResponse maps a category aggregate to its API shape
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateCategoryRequest adds a category to the shared catalog
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Slug        string     `json:"slug" binding:"required,min=1,max=100"`
	Description string     `json:"description"`
	Icon        string     `json:"icon" binding:"max=100"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   int        `json:"sort_order"`
}

// UpdateCategoryRequest modifies a category
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Icon        *string    `json:"icon" binding:"omitempty,max=100"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   *int       `json:"sort_order"`
}

// CategoryListFilter represents filter options for category listing
type CategoryListFilter struct {
	Search   string     `form:"search"`
	ParentID *uuid.UUID `form:"parent_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f CategoryListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "sort_order"
	filter.OrderDir = "asc"
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	if f.ParentID != nil {
		filter.Filters["parent_id"] = *f.ParentID
	}
	return filter
}
