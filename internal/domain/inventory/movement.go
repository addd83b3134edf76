package inventory

import (
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "in"
	MovementTypeOut        MovementType = "out"
	MovementTypeAdjustment MovementType = "adjustment"
	MovementTypeTransfer   MovementType = "transfer"
)

// IsValid checks if the movement type is declared
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}

// MovementReason records why stock changed
type MovementReason string

const (
	MovementReasonPurchase   MovementReason = "purchase"
	MovementReasonSale       MovementReason = "sale"
	MovementReasonAdjustment MovementReason = "adjustment"
	MovementReasonWaste      MovementReason = "waste"
	MovementReasonReturn     MovementReason = "return"
)

// IsValid checks if the reason is declared
func (r MovementReason) IsValid() bool {
	switch r {
	case MovementReasonPurchase, MovementReasonSale, MovementReasonAdjustment,
		MovementReasonWaste, MovementReasonReturn:
		return true
	}
	return false
}

// Movement is an audit record of one stock change on an item. It is
// owned by the same clinic as the item it belongs to.
type Movement struct {
	shared.ClinicAggregateRoot
	ItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           MovementType    `gorm:"type:varchar(20);not null"`
	Quantity       decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	QuantityBefore decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Reason         MovementReason  `gorm:"type:varchar(20);not null"`
	ReferenceType  string          `gorm:"type:varchar(50)"`
	ReferenceID    string          `gorm:"type:varchar(100)"`
	Notes          string          `gorm:"type:text"`
	UserID         *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "inventory_movements"
}

// NewMovement records a stock change against an item. The before/after
// quantities are derived from the item, never supplied by the caller.
func NewMovement(item *Item, mType MovementType, quantity decimal.Decimal, reason MovementReason) (*Movement, error) {
	if item == nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Movement requires an inventory item")
	}
	if !mType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown movement type")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_REASON", "Unknown movement reason")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}

	before := item.Quantity
	delta := quantity
	if mType == MovementTypeOut {
		delta = quantity.Neg()
	}
	if err := item.AdjustQuantity(delta); err != nil {
		return nil, err
	}

	return &Movement{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(item.ClinicID),
		ItemID:              item.ID,
		Type:                mType,
		Quantity:            quantity,
		QuantityBefore:      before,
		QuantityAfter:       item.Quantity,
		Reason:              reason,
	}, nil
}
