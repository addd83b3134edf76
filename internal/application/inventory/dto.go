package inventory

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/inventory"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ClinicID         uuid.UUID       `json:"clinic_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	MinQuantity      decimal.Decimal `json:"min_quantity"`
	MaxQuantity      decimal.Decimal `json:"max_quantity"`
	Location         string          `json:"location,omitempty"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	TotalValue       decimal.Decimal `json:"total_value"`
	Status           string          `json:"status"`
	IsBelowMinimum   bool            `json:"is_below_minimum"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
	ExpirationDate   *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToItemResponse maps an item aggregate to its API shape
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:               i.ID,
		ClinicID:         i.ClinicID,
		ProductID:        i.ProductID,
		Quantity:         i.Quantity,
		MinQuantity:      i.MinQuantity,
		MaxQuantity:      i.MaxQuantity,
		Location:         i.Location,
		UnitCost:         i.UnitCost,
		TotalValue:       i.TotalValue,
		Status:           string(i.Status),
		IsBelowMinimum:   i.IsBelowMinimum(),
		LastPurchaseDate: i.LastPurchaseDate,
		ExpirationDate:   i.ExpirationDate,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID             uuid.UUID       `json:"id"`
	ClinicID       uuid.UUID       `json:"clinic_id"`
	ItemID         uuid.UUID       `json:"item_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason"`
	ReferenceType  string          `json:"reference_type,omitempty"`
	ReferenceID    string          `json:"reference_id,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToMovementResponse maps a movement aggregate to its API shape
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ClinicID:       m.ClinicID,
		ItemID:         m.ItemID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         string(m.Reason),
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Notes:          m.Notes,
		UserID:         m.UserID,
		CreatedAt:      m.CreatedAt,
	}
}

// CreateItemRequest stocks a product for a clinic. ClinicID is honored
// only for admin callers; for everyone else the item is created in the
// caller's own clinic regardless of what the payload says.
type CreateItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
	Location    string          `json:"location" binding:"max=100"`
	ClinicID    *uuid.UUID      `json:"clinic_id"`
}

// UpdateItemRequest modifies item thresholds and location
type UpdateItemRequest struct {
	MinQuantity *decimal.Decimal `json:"min_quantity"`
	MaxQuantity *decimal.Decimal `json:"max_quantity"`
	Location    *string          `json:"location" binding:"omitempty,max=100"`
}

// ItemListFilter represents filter options for item listing
type ItemListFilter struct {
	ProductID    *uuid.UUID `form:"product_id"`
	Status       string     `form:"status" binding:"omitempty,oneof=in_stock low_stock out_of_stock discontinued"`
	BelowMinimum *bool      `form:"below_minimum"`
	ClinicID     *uuid.UUID `form:"clinic_id"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f ItemListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.ProductID != nil {
		filter.Filters["product_id"] = *f.ProductID
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.BelowMinimum != nil && *f.BelowMinimum {
		filter.Filters["below_minimum"] = true
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}

// RecordMovementRequest records a stock change against an item
type RecordMovementRequest struct {
	ItemID        uuid.UUID       `json:"item_id" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=in out adjustment transfer"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reason        string          `json:"reason" binding:"required,oneof=purchase sale adjustment waste return"`
	ReferenceType string          `json:"reference_type" binding:"max=50"`
	ReferenceID   string          `json:"reference_id" binding:"max=100"`
	Notes         string          `json:"notes"`
	ClinicID      *uuid.UUID      `json:"clinic_id"`
}

// MovementListFilter represents filter options for movement listing
type MovementListFilter struct {
	ItemID   *uuid.UUID `form:"item_id"`
	Type     string     `form:"type" binding:"omitempty,oneof=in out adjustment transfer"`
	Reason   string     `form:"reason" binding:"omitempty,oneof=purchase sale adjustment waste return"`
	ClinicID *uuid.UUID `form:"clinic_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f MovementListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	if f.ItemID != nil {
		filter.Filters["item_id"] = *f.ItemID
	}
	if f.Type != "" {
		filter.Filters["type"] = f.Type
	}
	if f.Reason != "" {
		filter.Filters["reason"] = f.Reason
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}
