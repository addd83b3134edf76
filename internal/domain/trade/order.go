// Package trade holds clinic purchase orders placed with suppliers.
package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusDraft      OrderStatus = "draft"
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PaymentMethod is how an order is paid
type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodBoleto PaymentMethod = "boleto"
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodCard   PaymentMethod = "card"
)

// OrderItem is one product line on an order
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Discount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Notes     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is a clinic's purchase order with one supplier
type Order struct {
	shared.ClinicAggregateRoot
	OrderNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status            OrderStatus     `gorm:"type:varchar(20);not null;default:'draft'"`
	Subtotal          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Discount          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Tax               decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Shipping          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Total             decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PaymentMethod     PaymentMethod   `gorm:"type:varchar(20)"`
	PaymentStatus     PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDueDate    *time.Time
	DeliveryAddress   string `gorm:"type:text"`
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	TrackingCode      string      `gorm:"type:varchar(100)"`
	Notes             string      `gorm:"type:text"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderNumber builds an order number from the year and a sequence
func NewOrderNumber(year, seq int) string {
	return fmt.Sprintf("ORD-%04d-%06d", year, seq)
}

// NewOrder creates a new draft order for a clinic
func NewOrder(clinicID, supplierID uuid.UUID, orderNumber string) (*Order, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Order supplier is required")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is required")
	}

	return &Order{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		OrderNumber:         orderNumber,
		SupplierID:          supplierID,
		Status:              OrderStatusDraft,
		Subtotal:            decimal.Zero,
		Discount:            decimal.Zero,
		Tax:                 decimal.Zero,
		Shipping:            decimal.Zero,
		Total:               decimal.Zero,
		PaymentStatus:       PaymentStatusPending,
	}, nil
}

// AddItem appends a product line and recalculates the totals
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice, discount decimal.Decimal) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Order item product is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	if unitPrice.IsNegative() || discount.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Order item price and discount cannot be negative")
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
	if subtotal.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount exceeds the line subtotal")
	}

	o.Items = append(o.Items, OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Discount:   discount,
		Subtotal:   subtotal,
	})
	o.recalculate()
	o.Touch()
	return nil
}

// Submit moves a draft order to pending
func (o *Order) Submit() error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order has no items")
	}
	o.Status = OrderStatusPending
	o.Touch()
	o.IncrementVersion()
	return nil
}

// Cancel cancels an order that has not shipped
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return shared.ErrInvalidState
	}
	o.Status = OrderStatusCancelled
	o.PaymentStatus = PaymentStatusCancelled
	o.Touch()
	o.IncrementVersion()
	return nil
}

func (o *Order) recalculate() {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		discount = discount.Add(item.Discount)
	}
	o.Subtotal = subtotal
	o.Discount = discount
	o.Total = subtotal.Sub(discount).Add(o.Tax).Add(o.Shipping)
}

// OrderRepository provides clinic-keyed access to orders
type OrderRepository interface {
	shared.ClinicRepository[Order]
	CountByYear(ctx context.Context, year int) (int64, error)
}
