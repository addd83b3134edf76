package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/finance"
)

// GormTransactionRepository implements finance.TransactionRepository
// using GORM. Transactions are clinic-owned.
type GormTransactionRepository struct {
	gormClinicRepo[finance.Transaction]
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{
		gormClinicRepo: newGormClinicRepo[finance.Transaction](db, queryOptions{
			sortFields:   TransactionSortFields,
			defaultOrder: "created_at",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("transaction_number ILIKE ? OR description ILIKE ?", term, term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if txType, ok := filters["type"]; ok {
					q = q.Where("type = ?", txType)
				}
				if category, ok := filters["category"]; ok {
					q = q.Where("category = ?", category)
				}
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				return q
			},
		}),
	}
}

// CountByYear counts transactions numbered within a year, used to derive
// the next transaction sequence. Numbers are unique platform-wide, so
// the count deliberately runs unscoped.
func (r *GormTransactionRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("TRX-%04d-%%", year)
	if err := r.db.WithContext(ctx).
		Unscoped().
		Model(&finance.Transaction{}).
		Where("transaction_number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ finance.TransactionRepository = (*GormTransactionRepository)(nil)
