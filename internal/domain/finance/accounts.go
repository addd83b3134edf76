package finance

import (
	"strings"
	"time"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableCategory classifies a payable obligation
type PayableCategory string

const (
	PayableCategorySupplier  PayableCategory = "supplier"
	PayableCategoryRent      PayableCategory = "rent"
	PayableCategorySalary    PayableCategory = "salary"
	PayableCategoryUtilities PayableCategory = "utilities"
	PayableCategoryTax       PayableCategory = "tax"
	PayableCategoryOther     PayableCategory = "other"
)

// IsValid checks if the category is declared
func (c PayableCategory) IsValid() bool {
	switch c {
	case PayableCategorySupplier, PayableCategoryRent, PayableCategorySalary,
		PayableCategoryUtilities, PayableCategoryTax, PayableCategoryOther:
		return true
	}
	return false
}

// SettlementStatus is shared by payables and receivables
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "pending"
	SettlementStatusOverdue   SettlementStatus = "overdue"
	SettlementStatusSettled   SettlementStatus = "settled"
	SettlementStatusCancelled SettlementStatus = "cancelled"
)

// AccountPayable is money a clinic owes
type AccountPayable struct {
	shared.ClinicAggregateRoot
	SupplierID   *uuid.UUID       `gorm:"type:uuid;index"`
	CreditorName string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:varchar(500);not null"`
	Category     PayableCategory  `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	AmountPaid   decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0"`
	DueDate      time.Time        `gorm:"not null;index"`
	PaymentDate  *time.Time
	Status       SettlementStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	OrderID      *uuid.UUID       `gorm:"type:uuid"`
	InvoiceID    *uuid.UUID       `gorm:"type:uuid"`
	Notes        string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AccountPayable) TableName() string {
	return "accounts_payable"
}

// NewAccountPayable creates a pending payable for a clinic
func NewAccountPayable(clinicID uuid.UUID, creditorName, description string, category PayableCategory, amount decimal.Decimal, dueDate time.Time) (*AccountPayable, error) {
	if strings.TrimSpace(creditorName) == "" {
		return nil, shared.NewDomainError("INVALID_CREDITOR", "Creditor name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Payable description is required")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown payable category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payable amount must be positive")
	}

	return &AccountPayable{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		CreditorName:        strings.TrimSpace(creditorName),
		Description:         strings.TrimSpace(description),
		Category:            category,
		Amount:              amount,
		AmountPaid:          decimal.Zero,
		DueDate:             dueDate,
		Status:              SettlementStatusPending,
	}, nil
}

// AmountRemaining returns the unpaid balance
func (p *AccountPayable) AmountRemaining() decimal.Decimal {
	return p.Amount.Sub(p.AmountPaid)
}

// RegisterPayment applies a payment and settles the payable when covered
func (p *AccountPayable) RegisterPayment(amount decimal.Decimal, at time.Time) error {
	if p.Status == SettlementStatusSettled || p.Status == SettlementStatusCancelled {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(p.AmountRemaining()) {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds the remaining amount")
	}

	p.AmountPaid = p.AmountPaid.Add(amount)
	if p.AmountRemaining().IsZero() {
		p.Status = SettlementStatusSettled
		p.PaymentDate = &at
	}
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ReceivableMethod is how a receivable is collected
type ReceivableMethod string

const (
	ReceivableMethodCash      ReceivableMethod = "cash"
	ReceivableMethodCard      ReceivableMethod = "card"
	ReceivableMethodPix       ReceivableMethod = "pix"
	ReceivableMethodInsurance ReceivableMethod = "insurance"
)

// AccountReceivable is money owed to a clinic, typically for a procedure
type AccountReceivable struct {
	shared.ClinicAggregateRoot
	PatientName    string           `gorm:"type:varchar(200);not null"`
	PatientCPF     string           `gorm:"type:varchar(14)"`
	Description    string           `gorm:"type:varchar(500);not null"`
	Procedure      string           `gorm:"type:varchar(200)"`
	Amount         decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	AmountReceived decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0"`
	DueDate        time.Time        `gorm:"not null;index"`
	ReceivedDate   *time.Time
	Status         SettlementStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod  ReceivableMethod `gorm:"type:varchar(20)"`
	AppointmentID  *uuid.UUID       `gorm:"type:uuid"`
	Notes          string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AccountReceivable) TableName() string {
	return "accounts_receivable"
}

// NewAccountReceivable creates a pending receivable for a clinic
func NewAccountReceivable(clinicID uuid.UUID, patientName, description string, amount decimal.Decimal, dueDate time.Time) (*AccountReceivable, error) {
	if strings.TrimSpace(patientName) == "" {
		return nil, shared.NewDomainError("INVALID_PATIENT", "Patient name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Receivable description is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receivable amount must be positive")
	}

	return &AccountReceivable{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		PatientName:         strings.TrimSpace(patientName),
		Description:         strings.TrimSpace(description),
		Amount:              amount,
		AmountReceived:      decimal.Zero,
		DueDate:             dueDate,
		Status:              SettlementStatusPending,
	}, nil
}

// AmountRemaining returns the uncollected balance
func (r *AccountReceivable) AmountRemaining() decimal.Decimal {
	return r.Amount.Sub(r.AmountReceived)
}

// RegisterReceipt applies a received amount and settles when covered
func (r *AccountReceivable) RegisterReceipt(amount decimal.Decimal, at time.Time) error {
	if r.Status == SettlementStatusSettled || r.Status == SettlementStatusCancelled {
		return shared.ErrInvalidState
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Receipt amount must be positive")
	}
	if amount.GreaterThan(r.AmountRemaining()) {
		return shared.NewDomainError("OVERPAYMENT", "Receipt exceeds the remaining amount")
	}

	r.AmountReceived = r.AmountReceived.Add(amount)
	if r.AmountRemaining().IsZero() {
		r.Status = SettlementStatusSettled
		r.ReceivedDate = &at
	}
	r.Touch()
	r.IncrementVersion()
	return nil
}
