package catalog

import (
	"context"

	"github.com/clinisupply/backend/internal/domain/shared"
)

// ProductRepository provides access to product records
type ProductRepository interface {
	shared.Repository[Product]
	FindBySKU(ctx context.Context, sku string) (*Product, error)
}

// CategoryRepository provides access to category records
type CategoryRepository interface {
	shared.Repository[Category]
	FindBySlug(ctx context.Context, slug string) (*Category, error)
}
