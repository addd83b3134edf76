// Package catalog implements the shared product catalog services.
// Catalog data is platform-wide: every authenticated user sees the same
// products and categories regardless of clinic.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/catalog"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles catalog product operations
type ProductService struct {
	products catalog.ProductRepository
	guard    *guard.Guard
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, g *guard.Guard) *ProductService {
	return &ProductService{products: products, guard: g}
}

// List returns a page of catalog products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := filter.ToFilter()
	if _, err := s.guard.ScopeRead(ctx, isolation.KindProduct, &f); err != nil {
		return nil, err
	}

	products, err := s.products.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindProduct); err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindProduct, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySKU returns one product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindProduct); err != nil {
		return nil, err
	}
	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindProduct); err != nil {
		return nil, err
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if _, err := s.products.FindBySKU(ctx, sku); err == nil {
		return nil, shared.NewDomainError("SKU_TAKEN", "A product with this SKU already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	product, err := catalog.NewProduct(req.SupplierID, req.CategoryID, req.Name, req.Slug, sku, req.BasePrice, catalog.ProductUnit(req.Unit))
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.Brand = req.Brand
	product.RequiresPrescription = req.RequiresPrescription
	if req.UnitsPerPackage > 0 {
		product.UnitsPerPackage = req.UnitsPerPackage
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update modifies a catalog product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindProduct); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRODUCT_PRICE", "Product base price cannot be negative")
		}
		product.BasePrice = *req.BasePrice
	}
	if req.Unit != nil {
		unit := catalog.ProductUnit(*req.Unit)
		if !unit.IsValid() {
			return nil, shared.NewDomainError("INVALID_PRODUCT_UNIT", "Unknown product unit")
		}
		product.Unit = unit
	}
	if req.UnitsPerPackage != nil {
		product.UnitsPerPackage = *req.UnitsPerPackage
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if req.StockSupplier != nil {
		product.StockSupplier = *req.StockSupplier
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.RequiresPrescription != nil {
		product.RequiresPrescription = *req.RequiresPrescription
	}
	product.Touch()
	product.IncrementVersion()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.guard.Resolve(ctx, isolation.KindProduct); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
