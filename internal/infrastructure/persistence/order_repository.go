package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/domain/trade"
)

// GormOrderRepository implements trade.OrderRepository using GORM.
// Orders are clinic-owned; line items are loaded with the order.
type GormOrderRepository struct {
	gormClinicRepo[trade.Order]
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		gormClinicRepo: newGormClinicRepo[trade.Order](db, queryOptions{
			sortFields:   OrderSortFields,
			defaultOrder: "created_at",
			search: func(q *gorm.DB, term string) *gorm.DB {
				return q.Where("order_number ILIKE ?", term)
			},
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				if supplierID, ok := filters["supplier_id"]; ok {
					q = q.Where("supplier_id = ?", supplierID)
				}
				if paymentStatus, ok := filters["payment_status"]; ok {
					q = q.Where("payment_status = ?", paymentStatus)
				}
				return q
			},
		}),
	}
}

// FindByIDForClinic loads one order with its line items
func (r *GormOrderRepository) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := byClinic(r.db.WithContext(ctx), clinicID).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForClinic lists the clinic's orders with their line items
func (r *GormOrderRepository) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	q := byClinic(r.db.WithContext(ctx).Model(&trade.Order{}).Preload("Items"), clinicID)
	q = applyQueryOptions(q, filter, r.opts)
	q = applyPagination(q, filter, r.opts)

	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its line items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(order).Error
}

// CountByYear counts orders numbered within a year, used to derive the
// next order sequence. Order numbers are unique platform-wide, so the
// count deliberately runs unscoped.
func (r *GormOrderRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	var count int64
	prefix := fmt.Sprintf("ORD-%04d-%%", year)
	if err := r.db.WithContext(ctx).
		Unscoped().
		Model(&trade.Order{}).
		Where("order_number LIKE ?", prefix).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
