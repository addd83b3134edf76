package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/finance"
)

// GormInvoiceRepository implements finance.InvoiceRepository using GORM.
// Invoices are clinic-owned.
type GormInvoiceRepository struct {
	gormClinicRepo[finance.Invoice]
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		gormClinicRepo: newGormClinicRepo[finance.Invoice](db, queryOptions{
			sortFields:   InvoiceSortFields,
			defaultOrder: "created_at",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("invoice_number ILIKE ? OR access_key ILIKE ?", term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if invoiceType, ok := filters["type"]; ok {
					q = q.Where("type = ?", invoiceType)
				}
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				if supplierID, ok := filters["supplier_id"]; ok {
					q = q.Where("supplier_id = ?", supplierID)
				}
				return q
			},
		}),
	}
}

// CountByYear counts invoices numbered within a year, used to derive the
// next invoice sequence. Numbers are unique platform-wide, so the count
// deliberately runs unscoped.
func (r *GormInvoiceRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("INV-%04d-%%", year)
	if err := r.db.WithContext(ctx).
		Unscoped().
		Model(&finance.Invoice{}).
		Where("invoice_number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ finance.InvoiceRepository = (*GormInvoiceRepository)(nil)
