package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/finance"
)

// GormAccountReceivableRepository implements
// finance.AccountReceivableRepository using GORM. Receivables are
// clinic-owned.
type GormAccountReceivableRepository struct {
	gormClinicRepo[finance.AccountReceivable]
}

// NewGormAccountReceivableRepository creates a new GormAccountReceivableRepository
func NewGormAccountReceivableRepository(db *gorm.DB) *GormAccountReceivableRepository {
	return &GormAccountReceivableRepository{
		gormClinicRepo: newGormClinicRepo[finance.AccountReceivable](db, queryOptions{
			sortFields:   AccountReceivableSortFields,
			defaultOrder: "due_date",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("patient_name ILIKE ? OR description ILIKE ? OR procedure ILIKE ?", term, term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				if method, ok := filters["payment_method"]; ok {
					q = q.Where("payment_method = ?", method)
				}
				return q
			},
		}),
	}
}

// FindOverdueForClinic lists pending receivables past their due date
func (r *GormAccountReceivableRepository) FindOverdueForClinic(ctx context.Context, clinicID uuid.UUID, asOf time.Time) ([]finance.AccountReceivable, error) {
	var receivables []finance.AccountReceivable
	if err := byClinic(r.db.WithContext(ctx), clinicID).
		Where("status = ? AND due_date < ?", finance.SettlementStatusPending, asOf).
		Order("due_date ASC").
		Find(&receivables).Error; err != nil {
		return nil, err
	}
	return receivables, nil
}

var _ finance.AccountReceivableRepository = (*GormAccountReceivableRepository)(nil)
