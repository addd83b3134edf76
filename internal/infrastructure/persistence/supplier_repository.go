package persistence

import (
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/partner"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM.
// Suppliers are shared platform data, readable by every clinic.
type GormSupplierRepository struct {
	gormSharedRepo[partner.Supplier]
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{
		gormSharedRepo: newGormSharedRepo[partner.Supplier](db, queryOptions{
			sortFields:   SupplierSortFields,
			defaultOrder: "name",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", term, term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				return q
			},
		}),
	}
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
