// Package finance holds clinic-owned financial records: transactions,
// invoices, and accounts payable/receivable.
package finance

import (
	"fmt"
	"strings"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a balance change
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// IsValid checks if the transaction type is declared
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// TransactionCategory classifies what caused a transaction
type TransactionCategory string

const (
	TransactionCategoryOrder      TransactionCategory = "order"
	TransactionCategoryPayment    TransactionCategory = "payment"
	TransactionCategoryRefund     TransactionCategory = "refund"
	TransactionCategoryFee        TransactionCategory = "fee"
	TransactionCategoryAdjustment TransactionCategory = "adjustment"
	TransactionCategoryProcedure  TransactionCategory = "procedure"
)

// IsValid checks if the category is declared
func (c TransactionCategory) IsValid() bool {
	switch c {
	case TransactionCategoryOrder, TransactionCategoryPayment, TransactionCategoryRefund,
		TransactionCategoryFee, TransactionCategoryAdjustment, TransactionCategoryProcedure:
		return true
	}
	return false
}

// TransactionStatus is the settlement state of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
	TransactionStatusReversed  TransactionStatus = "reversed"
)

// Transaction records a single balance change on a clinic's account
type Transaction struct {
	shared.ClinicAggregateRoot
	TransactionNumber string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type              TransactionType     `gorm:"type:varchar(10);not null"`
	Category          TransactionCategory `gorm:"type:varchar(20);not null"`
	Amount            decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	BalanceBefore     decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	BalanceAfter      decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	Description       string              `gorm:"type:varchar(500);not null"`
	Notes             string              `gorm:"type:text"`
	OrderID           *uuid.UUID          `gorm:"type:uuid;index"`
	Status            TransactionStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedBy         *uuid.UUID          `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransactionNumber builds a transaction number from the year and a sequence
func NewTransactionNumber(year, seq int) string {
	return fmt.Sprintf("TRX-%04d-%08d", year, seq)
}

// NewTransaction records a balance change for a clinic. BalanceAfter is
// derived from the current balance and the signed amount.
func NewTransaction(clinicID uuid.UUID, number string, tType TransactionType, category TransactionCategory, amount, balanceBefore decimal.Decimal, description string) (*Transaction, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number is required")
	}
	if !tType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Unknown transaction type")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_CATEGORY", "Unknown transaction category")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Transaction amount must be positive")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Transaction description is required")
	}

	after := balanceBefore.Add(amount)
	if tType == TransactionTypeDebit {
		after = balanceBefore.Sub(amount)
	}

	return &Transaction{
		ClinicAggregateRoot: shared.NewClinicAggregateRoot(clinicID),
		TransactionNumber:   number,
		Type:                tType,
		Category:            category,
		Amount:              amount,
		BalanceBefore:       balanceBefore,
		BalanceAfter:        after,
		Description:         strings.TrimSpace(description),
		Status:              TransactionStatusPending,
	}, nil
}

// Complete marks the transaction as settled
func (t *Transaction) Complete() error {
	if t.Status != TransactionStatusPending {
		return shared.ErrInvalidState
	}
	t.Status = TransactionStatusCompleted
	t.Touch()
	t.IncrementVersion()
	return nil
}
