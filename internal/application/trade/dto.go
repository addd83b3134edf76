package trade

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one product line on an order request
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
	Discount  decimal.Decimal `json:"discount"`
	Notes     string          `json:"notes"`
}

// CreateOrderRequest creates a draft purchase order
type CreateOrderRequest struct {
	SupplierID        uuid.UUID          `json:"supplier_id" binding:"required"`
	Items             []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod     string             `json:"payment_method" binding:"omitempty,oneof=credit boleto pix card"`
	DeliveryAddress   string             `json:"delivery_address"`
	EstimatedDelivery *time.Time         `json:"estimated_delivery"`
	Notes             string             `json:"notes"`
	ClinicID          *uuid.UUID         `json:"clinic_id"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID           `json:"id"`
	ClinicID          uuid.UUID           `json:"clinic_id"`
	OrderNumber       string              `json:"order_number"`
	SupplierID        uuid.UUID           `json:"supplier_id"`
	Status            string              `json:"status"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	Discount          decimal.Decimal     `json:"discount"`
	Tax               decimal.Decimal     `json:"tax"`
	Shipping          decimal.Decimal     `json:"shipping"`
	Total             decimal.Decimal     `json:"total"`
	PaymentMethod     string              `json:"payment_method,omitempty"`
	PaymentStatus     string              `json:"payment_status"`
	PaymentDueDate    *time.Time          `json:"payment_due_date,omitempty"`
	DeliveryAddress   string              `json:"delivery_address,omitempty"`
	EstimatedDelivery *time.Time          `json:"estimated_delivery,omitempty"`
	DeliveredAt       *time.Time          `json:"delivered_at,omitempty"`
	TrackingCode      string              `json:"tracking_code,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	Items             []OrderItemResponse `json:"items"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ToOrderResponse maps an order aggregate to its API shape
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
			Subtotal:  item.Subtotal,
			Notes:     item.Notes,
		})
	}
	return OrderResponse{
		ID:                o.ID,
		ClinicID:          o.ClinicID,
		OrderNumber:       o.OrderNumber,
		SupplierID:        o.SupplierID,
		Status:            string(o.Status),
		Subtotal:          o.Subtotal,
		Discount:          o.Discount,
		Tax:               o.Tax,
		Shipping:          o.Shipping,
		Total:             o.Total,
		PaymentMethod:     string(o.PaymentMethod),
		PaymentStatus:     string(o.PaymentStatus),
		PaymentDueDate:    o.PaymentDueDate,
		DeliveryAddress:   o.DeliveryAddress,
		EstimatedDelivery: o.EstimatedDelivery,
		DeliveredAt:       o.DeliveredAt,
		TrackingCode:      o.TrackingCode,
		Notes:             o.Notes,
		Items:             items,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// OrderListFilter represents filter options for order listing
type OrderListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=draft pending confirmed processing shipped delivered cancelled"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	ClinicID   *uuid.UUID `form:"clinic_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f OrderListFilter) ToFilter() shared.Filter {
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
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.SupplierID != nil {
		filter.Filters["supplier_id"] = *f.SupplierID
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}
