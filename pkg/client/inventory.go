package client

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestOption tweaks a single request.
type RequestOption func(url.Values)

// InClinic names the clinic a request operates on. Only platform admins
// may target a clinic other than their own; for everyone else the
// server scopes to the caller's clinic regardless.
func InClinic(clinicID uuid.UUID) RequestOption {
	return func(v url.Values) {
		v.Set("clinic_id", clinicID.String())
	}
}

func applyOptions(opts []RequestOption) url.Values {
	v := url.Values{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// InventoryService manages clinic stock records and movements.
type InventoryService struct {
	client *Client
}

// CreateItemRequest opens a stock record for a product.
type CreateItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
	Location    string          `json:"location,omitempty"`
	ClinicID    *uuid.UUID      `json:"clinic_id,omitempty"`
}

// UpdateItemRequest patches item thresholds and location.
type UpdateItemRequest struct {
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
	MaxQuantity *decimal.Decimal `json:"max_quantity,omitempty"`
	Location    *string          `json:"location,omitempty"`
}

// RecordMovementRequest records a stock change against an item.
type RecordMovementRequest struct {
	ItemID        uuid.UUID       `json:"item_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ClinicID      *uuid.UUID      `json:"clinic_id,omitempty"`
}

// CreateItem opens a stock record.
func (s *InventoryService) CreateItem(ctx context.Context, req CreateItemRequest) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.client.post(ctx, "/inventory/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns stock records with pagination metadata.
func (s *InventoryService) ListItems(ctx context.Context, opts *ListOptions) ([]InventoryItem, *Meta, error) {
	var items []InventoryItem
	meta, err := s.client.get(ctx, "/inventory/items", opts.values(), &items)
	if err != nil {
		return nil, nil, err
	}
	return items, meta, nil
}

// GetItem returns a single stock record.
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*InventoryItem, error) {
	var item InventoryItem
	if _, err := s.client.get(ctx, "/inventory/items/"+id.String(), applyOptions(opts), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByProduct returns the caller's stock record for a product.
func (s *InventoryService) GetItemByProduct(ctx context.Context, productID uuid.UUID, opts ...RequestOption) (*InventoryItem, error) {
	var item InventoryItem
	if _, err := s.client.get(ctx, "/inventory/items/product/"+productID.String(), applyOptions(opts), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem patches a stock record.
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest, opts ...RequestOption) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.client.put(ctx, "/inventory/items/"+id.String(), applyOptions(opts), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RecordMovement records a stock change and returns the movement.
func (s *InventoryService) RecordMovement(ctx context.Context, req RecordMovementRequest) (*InventoryMovement, error) {
	var movement InventoryMovement
	if err := s.client.post(ctx, "/inventory/movements", req, &movement); err != nil {
		return nil, err
	}
	return &movement, nil
}

// ListMovements returns movements with pagination metadata.
func (s *InventoryService) ListMovements(ctx context.Context, opts *ListOptions) ([]InventoryMovement, *Meta, error) {
	var movements []InventoryMovement
	meta, err := s.client.get(ctx, "/inventory/movements", opts.values(), &movements)
	if err != nil {
		return nil, nil, err
	}
	return movements, meta, nil
}

// GetMovement returns a single movement.
func (s *InventoryService) GetMovement(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*InventoryMovement, error) {
	var movement InventoryMovement
	if _, err := s.client.get(ctx, "/inventory/movements/"+id.String(), applyOptions(opts), &movement); err != nil {
		return nil, err
	}
	return &movement, nil
}
