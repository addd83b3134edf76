package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TokenPair is the credential set issued by login and refresh.
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// User is a backend principal.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	ClinicID    *uuid.UUID `json:"clinic_id,omitempty"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Session is an authenticated user plus their tokens.
type Session struct {
	User   User       `json:"user"`
	Tokens *TokenPair `json:"tokens"`
}

// Clinic is a tenant on the platform.
type Clinic struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	CNPJ         string          `json:"cnpj"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Status       string          `json:"status"`
	Balance      decimal.Decimal `json:"balance"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	CreditUsed   decimal.Decimal `json:"credit_used"`
	PaymentTerms string          `json:"payment_terms,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Supplier is a platform-wide supplier record.
type Supplier struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	CNPJ          string          `json:"cnpj"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	Description   string          `json:"description,omitempty"`
	Website       string          `json:"website,omitempty"`
	MinOrderValue decimal.Decimal `json:"min_order_value"`
	Rating        int             `json:"rating"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Product is a shared catalog entry.
type Product struct {
	ID                   uuid.UUID       `json:"id"`
	SupplierID           uuid.UUID       `json:"supplier_id"`
	CategoryID           uuid.UUID       `json:"category_id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	SKU                  string          `json:"sku"`
	Description          string          `json:"description,omitempty"`
	Brand                string          `json:"brand,omitempty"`
	BasePrice            decimal.Decimal `json:"base_price"`
	Unit                 string          `json:"unit"`
	UnitsPerPackage      int             `json:"units_per_package"`
	Available            bool            `json:"available"`
	StockSupplier        int             `json:"stock_supplier"`
	IsFeatured           bool            `json:"is_featured"`
	IsNew                bool            `json:"is_new"`
	RequiresPrescription bool            `json:"requires_prescription"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// Category is a shared catalog category.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InventoryItem is a clinic's stock record for one product.
type InventoryItem struct {
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

// InventoryMovement is an immutable stock change record.
type InventoryMovement struct {
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

// OrderItem is one line of a purchase order.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
}

// Order is a clinic's purchase order with one supplier.
type Order struct {
	ID                uuid.UUID       `json:"id"`
	ClinicID          uuid.UUID       `json:"clinic_id"`
	OrderNumber       string          `json:"order_number"`
	SupplierID        uuid.UUID       `json:"supplier_id"`
	Status            string          `json:"status"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	Tax               decimal.Decimal `json:"tax"`
	Shipping          decimal.Decimal `json:"shipping"`
	Total             decimal.Decimal `json:"total"`
	PaymentMethod     string          `json:"payment_method,omitempty"`
	PaymentStatus     string          `json:"payment_status"`
	PaymentDueDate    *time.Time      `json:"payment_due_date,omitempty"`
	DeliveryAddress   string          `json:"delivery_address,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	DeliveredAt       *time.Time      `json:"delivered_at,omitempty"`
	TrackingCode      string          `json:"tracking_code,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Items             []OrderItem     `json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Transaction is a clinic balance movement.
type Transaction struct {
	ID                uuid.UUID       `json:"id"`
	ClinicID          uuid.UUID       `json:"clinic_id"`
	TransactionNumber string          `json:"transaction_number"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	BalanceBefore     decimal.Decimal `json:"balance_before"`
	BalanceAfter      decimal.Decimal `json:"balance_after"`
	Description       string          `json:"description"`
	Notes             string          `json:"notes,omitempty"`
	OrderID           *uuid.UUID      `json:"order_id,omitempty"`
	Status            string          `json:"status"`
	CreatedBy         *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Invoice is a fiscal document issued against a clinic.
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	ClinicID      uuid.UUID       `json:"clinic_id"`
	InvoiceNumber string          `json:"invoice_number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	OrderID       *uuid.UUID      `json:"order_id,omitempty"`
	Type          string          `json:"type"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	AccessKey     string          `json:"access_key,omitempty"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountPayable is an obligation a clinic owes.
type AccountPayable struct {
	ID              uuid.UUID       `json:"id"`
	ClinicID        uuid.UUID       `json:"clinic_id"`
	SupplierID      *uuid.UUID      `json:"supplier_id,omitempty"`
	CreditorName    string          `json:"creditor_name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	DueDate         time.Time       `json:"due_date"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	Status          string          `json:"status"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	InvoiceID       *uuid.UUID      `json:"invoice_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// AccountReceivable is an amount a clinic expects to collect.
type AccountReceivable struct {
	ID              uuid.UUID       `json:"id"`
	ClinicID        uuid.UUID       `json:"clinic_id"`
	PatientName     string          `json:"patient_name"`
	PatientCPF      string          `json:"patient_cpf,omitempty"`
	Description     string          `json:"description"`
	Procedure       string          `json:"procedure,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	AmountReceived  decimal.Decimal `json:"amount_received"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	DueDate         time.Time       `json:"due_date"`
	ReceivedDate    *time.Time      `json:"received_date,omitempty"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	AppointmentID   *uuid.UUID      `json:"appointment_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Appointment is a clinic's scheduled patient visit.
type Appointment struct {
	ID             uuid.UUID       `json:"id"`
	ClinicID       uuid.UUID       `json:"clinic_id"`
	PatientName    string          `json:"patient_name"`
	PatientPhone   string          `json:"patient_phone,omitempty"`
	PatientEmail   string          `json:"patient_email,omitempty"`
	Date           time.Time       `json:"date"`
	DurationMin    int             `json:"duration_min"`
	Procedure      string          `json:"procedure"`
	Status         string          `json:"status"`
	ProfessionalID *uuid.UUID      `json:"professional_id,omitempty"`
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
