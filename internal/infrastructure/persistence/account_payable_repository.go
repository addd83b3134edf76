package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/finance"
)

// GormAccountPayableRepository implements finance.AccountPayableRepository
// using GORM. Payables are clinic-owned.
type GormAccountPayableRepository struct {
	gormClinicRepo[finance.AccountPayable]
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{
		gormClinicRepo: newGormClinicRepo[finance.AccountPayable](db, queryOptions{
			sortFields:   AccountPayableSortFields,
			defaultOrder: "due_date",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("creditor_name ILIKE ? OR description ILIKE ?", term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				if category, ok := filters["category"]; ok {
					q = q.Where("category = ?", category)
				}
				if supplierID, ok := filters["supplier_id"]; ok {
					q = q.Where("supplier_id = ?", supplierID)
				}
				return q
			},
		}),
	}
}

// FindOverdueForClinic lists pending payables past their due date
func (r *GormAccountPayableRepository) FindOverdueForClinic(ctx context.Context, clinicID uuid.UUID, asOf time.Time) ([]finance.AccountPayable, error) {
	var payables []finance.AccountPayable
	if err := byClinic(r.db.WithContext(ctx), clinicID).
		Where("status = ? AND due_date < ?", finance.SettlementStatusPending, asOf).
		Order("due_date ASC").
		Find(&payables).Error; err != nil {
		return nil, err
	}
	return payables, nil
}

var _ finance.AccountPayableRepository = (*GormAccountPayableRepository)(nil)
