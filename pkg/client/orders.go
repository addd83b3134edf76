package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService manages a clinic's purchase orders.
type OrderService struct {
	client *Client
}

// OrderItemRequest is one line of a new purchase order.
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Notes     string          `json:"notes,omitempty"`
}

// CreateOrderRequest creates a draft purchase order.
type CreateOrderRequest struct {
	SupplierID        uuid.UUID          `json:"supplier_id"`
	Items             []OrderItemRequest `json:"items"`
	PaymentMethod     string             `json:"payment_method,omitempty"`
	DeliveryAddress   string             `json:"delivery_address,omitempty"`
	EstimatedDelivery *time.Time         `json:"estimated_delivery,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	ClinicID          *uuid.UUID         `json:"clinic_id,omitempty"`
}

// Create creates a draft order.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := s.client.post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders with pagination metadata.
func (s *OrderService) List(ctx context.Context, opts *ListOptions) ([]Order, *Meta, error) {
	var orders []Order
	meta, err := s.client.get(ctx, "/orders", opts.values(), &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, meta, nil
}

// Get returns a single order.
func (s *OrderService) Get(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Order, error) {
	var order Order
	if _, err := s.client.get(ctx, "/orders/"+id.String(), applyOptions(opts), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Submit moves a draft order to pending.
func (s *OrderService) Submit(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Order, error) {
	var order Order
	if err := s.client.postQuery(ctx, "/orders/"+id.String()+"/submit", applyOptions(opts), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel cancels an order.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Order, error) {
	var order Order
	if err := s.client.postQuery(ctx, "/orders/"+id.String()+"/cancel", applyOptions(opts), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
