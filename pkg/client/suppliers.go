package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SupplierService manages the shared supplier registry.
type SupplierService struct {
	client *Client
}

// CreateSupplierRequest registers a supplier.
type CreateSupplierRequest struct {
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	CNPJ          string          `json:"cnpj"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	Description   string          `json:"description,omitempty"`
	Website       string          `json:"website,omitempty"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
}

// UpdateSupplierRequest patches supplier fields; nil fields are untouched.
type UpdateSupplierRequest struct {
	Name          *string          `json:"name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	Address       *string          `json:"address,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Website       *string          `json:"website,omitempty"`
	MinOrderValue *decimal.Decimal `json:"min_order_value,omitempty"`
	Rating        *int             `json:"rating,omitempty"`
	Status        *string          `json:"status,omitempty"`
}

// Create registers a supplier.
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	var supplier Supplier
	if err := s.client.post(ctx, "/suppliers", req, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// List returns suppliers with pagination metadata.
func (s *SupplierService) List(ctx context.Context, opts *ListOptions) ([]Supplier, *Meta, error) {
	var suppliers []Supplier
	meta, err := s.client.get(ctx, "/suppliers", opts.values(), &suppliers)
	if err != nil {
		return nil, nil, err
	}
	return suppliers, meta, nil
}

// Get returns a single supplier.
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	var supplier Supplier
	if _, err := s.client.get(ctx, "/suppliers/"+id.String(), nil, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// Update patches a supplier.
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*Supplier, error) {
	var supplier Supplier
	if err := s.client.put(ctx, "/suppliers/"+id.String(), nil, req, &supplier); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// Delete removes a supplier.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.delete(ctx, "/suppliers/"+id.String())
}
