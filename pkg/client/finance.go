package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceService manages transactions, invoices, payables and
// receivables.
type FinanceService struct {
	client *Client
}

// CreateTransactionRequest records a clinic balance movement.
type CreateTransactionRequest struct {
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	OrderID     *uuid.UUID      `json:"order_id,omitempty"`
	ClinicID    *uuid.UUID      `json:"clinic_id,omitempty"`
}

// CreateInvoiceRequest registers a fiscal document.
type CreateInvoiceRequest struct {
	SupplierID uuid.UUID       `json:"supplier_id"`
	OrderID    *uuid.UUID      `json:"order_id,omitempty"`
	Type       string          `json:"type"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	AccessKey  string          `json:"access_key,omitempty"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	ClinicID   *uuid.UUID      `json:"clinic_id,omitempty"`
}

// CreatePayableRequest registers an obligation.
type CreatePayableRequest struct {
	SupplierID   *uuid.UUID      `json:"supplier_id,omitempty"`
	CreditorName string          `json:"creditor_name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      time.Time       `json:"due_date"`
	OrderID      *uuid.UUID      `json:"order_id,omitempty"`
	InvoiceID    *uuid.UUID      `json:"invoice_id,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ClinicID     *uuid.UUID      `json:"clinic_id,omitempty"`
}

// CreateReceivableRequest registers an expected collection.
type CreateReceivableRequest struct {
	PatientName   string          `json:"patient_name"`
	PatientCPF    string          `json:"patient_cpf,omitempty"`
	Description   string          `json:"description"`
	Procedure     string          `json:"procedure,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	ClinicID      *uuid.UUID      `json:"clinic_id,omitempty"`
}

// RegisterPaymentRequest settles part or all of a payable or receivable.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

// CreateTransaction records a balance movement in pending state.
func (s *FinanceService) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var tx Transaction
	if err := s.client.post(ctx, "/transactions", req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions returns transactions with pagination metadata.
func (s *FinanceService) ListTransactions(ctx context.Context, opts *ListOptions) ([]Transaction, *Meta, error) {
	var txs []Transaction
	meta, err := s.client.get(ctx, "/transactions", opts.values(), &txs)
	if err != nil {
		return nil, nil, err
	}
	return txs, meta, nil
}

// GetTransaction returns a single transaction.
func (s *FinanceService) GetTransaction(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Transaction, error) {
	var tx Transaction
	if _, err := s.client.get(ctx, "/transactions/"+id.String(), applyOptions(opts), &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CompleteTransaction settles a pending transaction and moves the
// clinic balance.
func (s *FinanceService) CompleteTransaction(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Transaction, error) {
	var tx Transaction
	if err := s.client.postQuery(ctx, "/transactions/"+id.String()+"/complete", applyOptions(opts), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CreateInvoice registers a fiscal document.
func (s *FinanceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	var invoice Invoice
	if err := s.client.post(ctx, "/invoices", req, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns invoices with pagination metadata.
func (s *FinanceService) ListInvoices(ctx context.Context, opts *ListOptions) ([]Invoice, *Meta, error) {
	var invoices []Invoice
	meta, err := s.client.get(ctx, "/invoices", opts.values(), &invoices)
	if err != nil {
		return nil, nil, err
	}
	return invoices, meta, nil
}

// GetInvoice returns a single invoice.
func (s *FinanceService) GetInvoice(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Invoice, error) {
	var invoice Invoice
	if _, err := s.client.get(ctx, "/invoices/"+id.String(), applyOptions(opts), &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// MarkInvoicePaid marks an invoice as paid.
func (s *FinanceService) MarkInvoicePaid(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*Invoice, error) {
	var invoice Invoice
	if err := s.client.postQuery(ctx, "/invoices/"+id.String()+"/pay", applyOptions(opts), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// CreatePayable registers an obligation.
func (s *FinanceService) CreatePayable(ctx context.Context, req CreatePayableRequest) (*AccountPayable, error) {
	var payable AccountPayable
	if err := s.client.post(ctx, "/payables", req, &payable); err != nil {
		return nil, err
	}
	return &payable, nil
}

// ListPayables returns payables with pagination metadata.
func (s *FinanceService) ListPayables(ctx context.Context, opts *ListOptions) ([]AccountPayable, *Meta, error) {
	var payables []AccountPayable
	meta, err := s.client.get(ctx, "/payables", opts.values(), &payables)
	if err != nil {
		return nil, nil, err
	}
	return payables, meta, nil
}

// ListOverduePayables returns open payables past their due date.
func (s *FinanceService) ListOverduePayables(ctx context.Context, opts ...RequestOption) ([]AccountPayable, error) {
	var payables []AccountPayable
	if _, err := s.client.get(ctx, "/payables/overdue", applyOptions(opts), &payables); err != nil {
		return nil, err
	}
	return payables, nil
}

// GetPayable returns a single payable.
func (s *FinanceService) GetPayable(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*AccountPayable, error) {
	var payable AccountPayable
	if _, err := s.client.get(ctx, "/payables/"+id.String(), applyOptions(opts), &payable); err != nil {
		return nil, err
	}
	return &payable, nil
}

// RegisterPayment applies a payment to a payable.
func (s *FinanceService) RegisterPayment(ctx context.Context, id uuid.UUID, req RegisterPaymentRequest, opts ...RequestOption) (*AccountPayable, error) {
	var payable AccountPayable
	if err := s.client.postQuery(ctx, "/payables/"+id.String()+"/payments", applyOptions(opts), req, &payable); err != nil {
		return nil, err
	}
	return &payable, nil
}

// CreateReceivable registers an expected collection.
func (s *FinanceService) CreateReceivable(ctx context.Context, req CreateReceivableRequest) (*AccountReceivable, error) {
	var receivable AccountReceivable
	if err := s.client.post(ctx, "/receivables", req, &receivable); err != nil {
		return nil, err
	}
	return &receivable, nil
}

// ListReceivables returns receivables with pagination metadata.
func (s *FinanceService) ListReceivables(ctx context.Context, opts *ListOptions) ([]AccountReceivable, *Meta, error) {
	var receivables []AccountReceivable
	meta, err := s.client.get(ctx, "/receivables", opts.values(), &receivables)
	if err != nil {
		return nil, nil, err
	}
	return receivables, meta, nil
}

// ListOverdueReceivables returns open receivables past their due date.
func (s *FinanceService) ListOverdueReceivables(ctx context.Context, opts ...RequestOption) ([]AccountReceivable, error) {
	var receivables []AccountReceivable
	if _, err := s.client.get(ctx, "/receivables/overdue", applyOptions(opts), &receivables); err != nil {
		return nil, err
	}
	return receivables, nil
}

// GetReceivable returns a single receivable.
func (s *FinanceService) GetReceivable(ctx context.Context, id uuid.UUID, opts ...RequestOption) (*AccountReceivable, error) {
	var receivable AccountReceivable
	if _, err := s.client.get(ctx, "/receivables/"+id.String(), applyOptions(opts), &receivable); err != nil {
		return nil, err
	}
	return &receivable, nil
}

// RegisterReceipt applies a received amount to a receivable.
func (s *FinanceService) RegisterReceipt(ctx context.Context, id uuid.UUID, req RegisterPaymentRequest, opts ...RequestOption) (*AccountReceivable, error) {
	var receivable AccountReceivable
	if err := s.client.postQuery(ctx, "/receivables/"+id.String()+"/receipts", applyOptions(opts), req, &receivable); err != nil {
		return nil, err
	}
	return &receivable, nil
}
