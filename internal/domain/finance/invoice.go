package finance

import (
	"fmt"
	"time"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceType is the fiscal document type
type InvoiceType string

const (
	InvoiceTypeNFe     InvoiceType = "nfe"
	InvoiceTypeNFSe    InvoiceType = "nfse"
	InvoiceTypeReceipt InvoiceType = "receipt"
)

// IsValid checks if the invoice type is declared
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeNFe, InvoiceTypeNFSe, InvoiceTypeReceipt:
		return true
	}
	return false
}

// InvoiceStatus is the fiscal state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRectified InvoiceStatus = "rectified"
)

// Invoice is a fiscal document issued against a clinic
type Invoice struct {
	shared.ClinicAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	Type          InvoiceType     `gorm:"type:varchar(10);not null"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Tax           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'issued'"`
	AccessKey     string          `gorm:"type:varchar(60)"`
	IssueDate     time.Time       `gorm:"not null"`
	DueDate       *time.Time
	PaidAt        *time.Time
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoiceNumber builds an invoice number from the year and a sequence
func NewInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%04d-%06d", year, seq)
}

// NewInvoice creates an issued invoice for a clinic
func NewInvoice(clinicID, supplierID uuid.UUID, number string, iType InvoiceType, subtotal, tax decimal.Decimal, issueDate time.Time) (*Invoice, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Invoice supplier is required")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number is required")
	}
	if !iType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INVOICE_TYPE", "Unknown invoice type")
	}
	if subtotal.IsNegative() || tax.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amounts cannot be negative")
	}

	return &Invoice{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		InvoiceNumber:       number,
		SupplierID:          supplierID,
		Type:                iType,
		Subtotal:            subtotal,
		Tax:                 tax,
		Total:               subtotal.Add(tax),
		Status:              InvoiceStatusIssued,
		IssueDate:           issueDate,
	}, nil
}

// MarkPaid records the payment time
func (i *Invoice) MarkPaid(at time.Time) error {
	if i.Status != InvoiceStatusIssued {
		return shared.ErrInvalidState
	}
	i.PaidAt = &at
	i.Touch()
	i.IncrementVersion()
	return nil
}
