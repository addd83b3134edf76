package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService manages the shared product catalog.
type CatalogService struct {
	client *Client
}

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	SupplierID           uuid.UUID       `json:"supplier_id"`
	CategoryID           uuid.UUID       `json:"category_id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	SKU                  string          `json:"sku"`
	Description          string          `json:"description,omitempty"`
	Brand                string          `json:"brand,omitempty"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Unit                 string          `json:"unit"`
	UnitsPerPackage      int             `json:"units_per_package,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription"`
}

// UpdateProductRequest patches product fields; nil fields are untouched.
type UpdateProductRequest struct {
	Name                 *string          `json:"name,omitempty"`
	Description          *string          `json:"description,omitempty"`
	Brand                *string          `json:"brand,omitempty"`
	BasePrice            *decimal.Decimal `json:"base_price,omitempty"`
	Unit                 *string          `json:"unit,omitempty"`
	UnitsPerPackage      *int             `json:"units_per_package,omitempty"`
	Available            *bool            `json:"available,omitempty"`
	StockSupplier        *int             `json:"stock_supplier,omitempty"`
	IsFeatured           *bool            `json:"is_featured,omitempty"`
	IsNew                *bool            `json:"is_new,omitempty"`
	RequiresPrescription *bool            `json:"requires_prescription,omitempty"`
}

// CreateCategoryRequest adds a category to the catalog.
type CreateCategoryRequest struct {
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
}

// UpdateCategoryRequest patches category fields; nil fields are untouched.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Icon        *string    `json:"icon,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   *int       `json:"sort_order,omitempty"`
}

// CreateProduct adds a product to the catalog.
func (s *CatalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	var product Product
	if err := s.client.post(ctx, "/products", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns products with pagination metadata.
func (s *CatalogService) ListProducts(ctx context.Context, opts *ListOptions) ([]Product, *Meta, error) {
	var products []Product
	meta, err := s.client.get(ctx, "/products", opts.values(), &products)
	if err != nil {
		return nil, nil, err
	}
	return products, meta, nil
}

// GetProduct returns a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if _, err := s.client.get(ctx, "/products/"+id.String(), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySKU looks a product up by its SKU.
func (s *CatalogService) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	var product Product
	if _, err := s.client.get(ctx, "/products/sku/"+sku, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct patches a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*Product, error) {
	var product Product
	if err := s.client.put(ctx, "/products/"+id.String(), nil, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.client.delete(ctx, "/products/"+id.String())
}

// CreateCategory adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	var category Category
	if err := s.client.post(ctx, "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories returns categories with pagination metadata.
func (s *CatalogService) ListCategories(ctx context.Context, opts *ListOptions) ([]Category, *Meta, error) {
	var categories []Category
	meta, err := s.client.get(ctx, "/categories", opts.values(), &categories)
	if err != nil {
		return nil, nil, err
	}
	return categories, meta, nil
}

// GetCategory returns a single category.
func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	if _, err := s.client.get(ctx, "/categories/"+id.String(), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory patches a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*Category, error) {
	var category Category
	if err := s.client.put(ctx, "/categories/"+id.String(), nil, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.client.delete(ctx, "/categories/"+id.String())
}
