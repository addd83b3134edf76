package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/inventory"
	"github.com/clinisupply/backend/internal/domain/shared"
)

// GormItemRepository implements inventory.ItemRepository using GORM.
// Inventory items are clinic-owned; reads never leave the clinic key.
type GormItemRepository struct {
	gormClinicRepo[inventory.Item]
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{
		gormClinicRepo: newGormClinicRepo[inventory.Item](db, queryOptions{
			sortFields:   InventoryItemSortFields,
			defaultOrder: "created_at",
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if status, ok := filters["status"]; ok {
					q = q.Where("status = ?", status)
				}
				if productID, ok := filters["product_id"]; ok {
					q = q.Where("product_id = ?", productID)
				}
				if below, ok := filters["below_minimum"]; ok && below == true {
					q = q.Where("quantity < min_quantity")
				}
				return q
			},
		}),
	}
}

// FindByProductForClinic finds the clinic's stock record for a product
func (r *GormItemRepository) FindByProductForClinic(ctx context.Context, clinicID, productID uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND product_id = ?", clinicID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

var _ inventory.ItemRepository = (*GormItemRepository)(nil)

// GormMovementRepository implements inventory.MovementRepository using GORM
type GormMovementRepository struct {
	gormClinicRepo[inventory.Movement]
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{
		gormClinicRepo: newGormClinicRepo[inventory.Movement](db, queryOptions{
			sortFields:   InventoryMovementSortFields,
			defaultOrder: "created_at",
			filters: func(q *gorm.DB, filters map[string]interface{}) *gorm.DB {
				if itemID, ok := filters["item_id"]; ok {
					q = q.Where("item_id = ?", itemID)
				}
				if movementType, ok := filters["type"]; ok {
					q = q.Where("type = ?", movementType)
				}
				if reason, ok := filters["reason"]; ok {
					q = q.Where("reason = ?", reason)
				}
				return q
			},
		}),
	}
}

var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
