// Package inventory holds clinic-owned stock: inventory items and the
// movements that change them.
package inventory

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus represents the stock status of an inventory item
type ItemStatus string

const (
	ItemStatusInStock      ItemStatus = "in_stock"
	ItemStatusLowStock     ItemStatus = "low_stock"
	ItemStatusOutOfStock   ItemStatus = "out_of_stock"
	ItemStatusDiscontinued ItemStatus = "discontinued"
)

// Item is a clinic's stock record for one product
type Item struct {
	shared.ClinicAggregateRoot
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_clinic_product,unique,composite:clinic_id"`
	Quantity         decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	MinQuantity      decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	MaxQuantity      decimal.Decimal `gorm:"type:numeric(14,3);not null;default:0"`
	Location         string          `gorm:"type:varchar(100)"`
	UnitCost         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	TotalValue       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status           ItemStatus      `gorm:"type:varchar(20);not null;default:'in_stock'"`
	LastPurchaseDate *time.Time
	ExpirationDate   *time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates a new inventory item for a clinic
func NewItem(clinicID, productID uuid.UUID, quantity, unitCost decimal.Decimal) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Inventory item product is required")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Inventory quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_COST", "Inventory unit cost cannot be negative")
	}

	item := &Item{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		ProductID:           productID,
		Quantity:            quantity,
		UnitCost:            unitCost,
	}
	item.recalculate()
	return item, nil
}

// AdjustQuantity applies a signed quantity change and keeps the derived
// fields consistent. Negative results are rejected.
func (i *Item) AdjustQuantity(delta decimal.Decimal) error {
	next := i.Quantity.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Resulting quantity would be negative")
	}
	i.Quantity = next
	i.recalculate()
	i.Touch()
	i.IncrementVersion()
	return nil
}

// SetThresholds updates the low/high stock alert thresholds
func (i *Item) SetThresholds(minQty, maxQty decimal.Decimal) error {
	if minQty.IsNegative() || maxQty.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Thresholds cannot be negative")
	}
	i.MinQuantity = minQty
	i.MaxQuantity = maxQty
	i.recalculate()
	i.Touch()
	return nil
}

func (i *Item) recalculate() {
	i.TotalValue = i.Quantity.Mul(i.UnitCost)

	if i.Status == ItemStatusDiscontinued {
		return
	}
	switch {
	case i.Quantity.IsZero():
		i.Status = ItemStatusOutOfStock
	case i.MinQuantity.IsPositive() && i.Quantity.LessThanOrEqual(i.MinQuantity):
		i.Status = ItemStatusLowStock
	default:
		i.Status = ItemStatusInStock
	}
}

// IsBelowMinimum reports whether the item needs replenishing
func (i *Item) IsBelowMinimum() bool {
	return i.MinQuantity.IsPositive() && i.Quantity.LessThanOrEqual(i.MinQuantity)
}
