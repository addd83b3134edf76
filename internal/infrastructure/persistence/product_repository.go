package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/catalog"
	"github.com/clinisupply/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM.
// Products are shared platform data, readable by every clinic.
type GormProductRepository struct {
	gormSharedRepo[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{
		gormSharedRepo: newGormSharedRepo[catalog.Product](db, queryOptions{
			sortFields:   ProductSortFields,
			defaultOrder: "created_at",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("name ILIKE ? OR sku ILIKE ? OR description ILIKE ?", term, term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if categoryID, ok := filters["category_id"]; ok {
					q = q.Where("category_id = ?", categoryID)
				}
				if supplierID, ok := filters["supplier_id"]; ok {
					q = q.Where("supplier_id = ?", supplierID)
				}
				if available, ok := filters["available"]; ok {
					q = q.Where("available = ?", available)
				}
				if unit, ok := filters["unit"]; ok {
					q = q.Where("unit = ?", unit)
				}
				return q
			},
		}),
	}
}

// FindBySKU finds a product by its SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("sku = ?", strings.ToUpper(sku)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
