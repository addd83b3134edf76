package finance

import (
	"time"

	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// applyPaging copies common paging fields onto a repository filter
func applyPaging(filter *shared.Filter, page, pageSize int, orderBy, orderDir string) {
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
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

// ToTransactionResponse maps a transaction aggregate to its API shape
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                t.ID,
		ClinicID:          t.ClinicID,
		TransactionNumber: t.TransactionNumber,
		Type:              string(t.Type),
		Category:          string(t.Category),
		Amount:            t.Amount,
		BalanceBefore:     t.BalanceBefore,
		BalanceAfter:      t.BalanceAfter,
		Description:       t.Description,
		Notes:             t.Notes,
		OrderID:           t.OrderID,
		Status:            string(t.Status),
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
	}
}

// CreateTransactionRequest records a balance change for a clinic
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=credit debit"`
	Category    string          `json:"category" binding:"required,oneof=order payment refund fee adjustment procedure"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Notes       string          `json:"notes"`
	OrderID     *uuid.UUID      `json:"order_id"`
	ClinicID    *uuid.UUID      `json:"clinic_id"`
}

// TransactionListFilter represents filter options for transaction listing
type TransactionListFilter struct {
	Search   string     `form:"search"`
	Type     string     `form:"type" binding:"omitempty,oneof=credit debit"`
	Category string     `form:"category" binding:"omitempty,oneof=order payment refund fee adjustment procedure"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending completed cancelled reversed"`
	ClinicID *uuid.UUID `form:"clinic_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f TransactionListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	applyPaging(&filter, f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Type != "" {
		filter.Filters["type"] = f.Type
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
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

// ToInvoiceResponse maps an invoice aggregate to its API shape
func ToInvoiceResponse(i *finance.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            i.ID,
		ClinicID:      i.ClinicID,
		InvoiceNumber: i.InvoiceNumber,
		SupplierID:    i.SupplierID,
		OrderID:       i.OrderID,
		Type:          string(i.Type),
		Subtotal:      i.Subtotal,
		Tax:           i.Tax,
		Total:         i.Total,
		Status:        string(i.Status),
		AccessKey:     i.AccessKey,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		PaidAt:        i.PaidAt,
		Notes:         i.Notes,
		CreatedAt:     i.CreatedAt,
	}
}

// CreateInvoiceRequest issues a fiscal document against a clinic
type CreateInvoiceRequest struct {
	SupplierID uuid.UUID       `json:"supplier_id" binding:"required"`
	OrderID    *uuid.UUID      `json:"order_id"`
	Type       string          `json:"type" binding:"required,oneof=nfe nfse receipt"`
	Subtotal   decimal.Decimal `json:"subtotal" binding:"required"`
	Tax        decimal.Decimal `json:"tax"`
	AccessKey  string          `json:"access_key" binding:"max=60"`
	IssueDate  time.Time       `json:"issue_date" binding:"required"`
	DueDate    *time.Time      `json:"due_date"`
	Notes      string          `json:"notes"`
	ClinicID   *uuid.UUID      `json:"clinic_id"`
}

// InvoiceListFilter represents filter options for invoice listing
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	Type       string     `form:"type" binding:"omitempty,oneof=nfe nfse receipt"`
	Status     string     `form:"status" binding:"omitempty,oneof=issued cancelled rectified"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	ClinicID   *uuid.UUID `form:"clinic_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f InvoiceListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	applyPaging(&filter, f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Type != "" {
		filter.Filters["type"] = f.Type
	}
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

// PayableResponse represents an account payable in API responses
type PayableResponse struct {
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

// ToPayableResponse maps a payable aggregate to its API shape
func ToPayableResponse(p *finance.AccountPayable) PayableResponse {
	return PayableResponse{
		ID:              p.ID,
		ClinicID:        p.ClinicID,
		SupplierID:      p.SupplierID,
		CreditorName:    p.CreditorName,
		Description:     p.Description,
		Category:        string(p.Category),
		Amount:          p.Amount,
		AmountPaid:      p.AmountPaid,
		AmountRemaining: p.AmountRemaining(),
		DueDate:         p.DueDate,
		PaymentDate:     p.PaymentDate,
		Status:          string(p.Status),
		OrderID:         p.OrderID,
		InvoiceID:       p.InvoiceID,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
	}
}

// CreatePayableRequest records money a clinic owes
type CreatePayableRequest struct {
	SupplierID   *uuid.UUID      `json:"supplier_id"`
	CreditorName string          `json:"creditor_name" binding:"required,min=1,max=200"`
	Description  string          `json:"description" binding:"required,min=1,max=500"`
	Category     string          `json:"category" binding:"required,oneof=supplier rent salary utilities tax other"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DueDate      time.Time       `json:"due_date" binding:"required"`
	OrderID      *uuid.UUID      `json:"order_id"`
	InvoiceID    *uuid.UUID      `json:"invoice_id"`
	Notes        string          `json:"notes"`
	ClinicID     *uuid.UUID      `json:"clinic_id"`
}

// RegisterPaymentRequest applies a payment to a payable or receivable
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	PaidAt *time.Time      `json:"paid_at"`
}

// PayableListFilter represents filter options for payable listing
type PayableListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending overdue settled cancelled"`
	Category   string     `form:"category" binding:"omitempty,oneof=supplier rent salary utilities tax other"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	ClinicID   *uuid.UUID `form:"clinic_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f PayableListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "due_date"
	filter.OrderDir = "asc"
	applyPaging(&filter, f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.Category != "" {
		filter.Filters["category"] = f.Category
	}
	if f.SupplierID != nil {
		filter.Filters["supplier_id"] = *f.SupplierID
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}

// ReceivableResponse represents an account receivable in API responses
type ReceivableResponse struct {
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

// ToReceivableResponse maps a receivable aggregate to its API shape
func ToReceivableResponse(r *finance.AccountReceivable) ReceivableResponse {
	return ReceivableResponse{
		ID:              r.ID,
		ClinicID:        r.ClinicID,
		PatientName:     r.PatientName,
		PatientCPF:      r.PatientCPF,
		Description:     r.Description,
		Procedure:       r.Procedure,
		Amount:          r.Amount,
		AmountReceived:  r.AmountReceived,
		AmountRemaining: r.AmountRemaining(),
		DueDate:         r.DueDate,
		ReceivedDate:    r.ReceivedDate,
		Status:          string(r.Status),
		PaymentMethod:   string(r.PaymentMethod),
		AppointmentID:   r.AppointmentID,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
}

// CreateReceivableRequest records money owed to a clinic
type CreateReceivableRequest struct {
	PatientName   string          `json:"patient_name" binding:"required,min=1,max=200"`
	PatientCPF    string          `json:"patient_cpf" binding:"max=14"`
	Description   string          `json:"description" binding:"required,min=1,max=500"`
	Procedure     string          `json:"procedure" binding:"max=200"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	DueDate       time.Time       `json:"due_date" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card pix insurance"`
	AppointmentID *uuid.UUID      `json:"appointment_id"`
	Notes         string          `json:"notes"`
	ClinicID      *uuid.UUID      `json:"clinic_id"`
}

// ReceivableListFilter represents filter options for receivable listing
type ReceivableListFilter struct {
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending overdue settled cancelled"`
	PaymentMethod string     `form:"payment_method" binding:"omitempty,oneof=cash card pix insurance"`
	ClinicID      *uuid.UUID `form:"clinic_id"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the list filter to the repository filter
func (f ReceivableListFilter) ToFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.OrderBy = "due_date"
	filter.OrderDir = "asc"
	applyPaging(&filter, f.Page, f.PageSize, f.OrderBy, f.OrderDir)
	filter.Search = f.Search
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	if f.PaymentMethod != "" {
		filter.Filters["payment_method"] = f.PaymentMethod
	}
	if f.ClinicID != nil {
		filter.Filters[isolation.ClinicFilterKey] = *f.ClinicID
	}
	return filter
}
