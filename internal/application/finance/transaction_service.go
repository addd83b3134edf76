// Package finance implements clinic financial records: balance
// transactions, invoices, and accounts payable/receivable.
package finance

import (
	"context"
	"errors"
	"time"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TransactionService handles clinic balance transactions
type TransactionService struct {
	transactions finance.TransactionRepository
	clinics      identity.ClinicRepository
	guard        *guard.Guard
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactions finance.TransactionRepository, clinics identity.ClinicRepository, g *guard.Guard) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		clinics:      clinics,
		guard:        g,
		now:          time.Now,
	}
}

// Create records a pending transaction against the caller's clinic.
// The balance snapshot is taken from the clinic at creation time;
// the clinic balance itself only moves when the transaction completes.
// Transaction numbers are sequential per year across the whole platform.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	f := shared.DefaultFilter()
	if req.ClinicID != nil {
		f.Filters[isolation.ClinicFilterKey] = *req.ClinicID
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindTransaction, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	clinic, err := s.clinics.FindByID(ctx, clinicID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CLINIC_NOT_FOUND", "The clinic does not exist")
		}
		return nil, err
	}

	year := s.now().Year()
	seq, err := s.transactions.CountByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	tx, err := finance.NewTransaction(
		clinic.ID,
		finance.NewTransactionNumber(year, int(seq)+1),
		finance.TransactionType(req.Type),
		finance.TransactionCategory(req.Category),
		req.Amount,
		clinic.Balance,
		req.Description,
	)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindTransaction, tx); err != nil {
		return nil, err
	}
	tx.Notes = req.Notes
	tx.OrderID = req.OrderID
	tx.CreatedBy = &actx.UserID

	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// List returns a page of the clinic's transactions
func (s *TransactionService) List(ctx context.Context, filter TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindTransaction, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.transactions.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, ToTransactionResponse(&txs[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one transaction from the caller's clinic
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Complete settles a pending transaction and moves the clinic balance
func (s *TransactionService) Complete(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	if err := tx.Complete(); err != nil {
		return nil, err
	}

	clinic, err := s.clinics.FindByID(ctx, tx.ClinicID)
	if err != nil {
		return nil, err
	}
	clinic.Balance = tx.BalanceAfter
	clinic.Touch()
	clinic.IncrementVersion()

	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, err
	}
	if err := s.clinics.Save(ctx, clinic); err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

func (s *TransactionService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*finance.Transaction, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindTransaction, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactions.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindTransaction, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
