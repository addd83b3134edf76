package finance

import (
	"context"
	"time"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PayableService handles money a clinic owes
type PayableService struct {
	payables finance.AccountPayableRepository
	guard    *guard.Guard
	now      func() time.Time
}

// NewPayableService creates a new PayableService
func NewPayableService(payables finance.AccountPayableRepository, g *guard.Guard) *PayableService {
	return &PayableService{payables: payables, guard: g, now: time.Now}
}

// Create records a pending payable for the caller's clinic
func (s *PayableService) Create(ctx context.Context, req CreatePayableRequest) (*PayableResponse, error) {
	clinicSeed := uuid.Nil
	if req.ClinicID != nil {
		clinicSeed = *req.ClinicID
	}
	payable, err := finance.NewAccountPayable(
		clinicSeed,
		req.CreditorName,
		req.Description,
		finance.PayableCategory(req.Category),
		req.Amount,
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindAccountPayable, payable); err != nil {
		return nil, err
	}
	payable.SupplierID = req.SupplierID
	payable.OrderID = req.OrderID
	payable.InvoiceID = req.InvoiceID
	payable.Notes = req.Notes

	if err := s.payables.Save(ctx, payable); err != nil {
		return nil, err
	}
	resp := ToPayableResponse(payable)
	return &resp, nil
}

// List returns a page of the clinic's payables
func (s *PayableService) List(ctx context.Context, filter PayableListFilter) (*shared.Paginated[PayableResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAccountPayable, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	payables, err := s.payables.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.payables.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	items := make([]PayableResponse, 0, len(payables))
	for i := range payables {
		items = append(items, ToPayableResponse(&payables[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one payable from the caller's clinic
func (s *PayableService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*PayableResponse, error) {
	payable, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToPayableResponse(payable)
	return &resp, nil
}

// RegisterPayment applies a payment, settling the payable when covered
func (s *PayableService) RegisterPayment(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID, req RegisterPaymentRequest) (*PayableResponse, error) {
	payable, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	at := s.now()
	if req.PaidAt != nil {
		at = *req.PaidAt
	}
	if err := payable.RegisterPayment(req.Amount, at); err != nil {
		return nil, err
	}
	if err := s.payables.Save(ctx, payable); err != nil {
		return nil, err
	}
	resp := ToPayableResponse(payable)
	return &resp, nil
}

// ListOverdue returns the clinic's unsettled payables past their due date
func (s *PayableService) ListOverdue(ctx context.Context, clinicHint *uuid.UUID) ([]PayableResponse, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAccountPayable, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	payables, err := s.payables.FindOverdueForClinic(ctx, clinicID, s.now())
	if err != nil {
		return nil, err
	}
	items := make([]PayableResponse, 0, len(payables))
	for i := range payables {
		items = append(items, ToPayableResponse(&payables[i]))
	}
	return items, nil
}

func (s *PayableService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*finance.AccountPayable, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAccountPayable, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	payable, err := s.payables.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindAccountPayable, payable); err != nil {
		return nil, err
	}
	return payable, nil
}

// ReceivableService handles money owed to a clinic
type ReceivableService struct {
	receivables finance.AccountReceivableRepository
	guard       *guard.Guard
	now         func() time.Time
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivables finance.AccountReceivableRepository, g *guard.Guard) *ReceivableService {
	return &ReceivableService{receivables: receivables, guard: g, now: time.Now}
}

// Create records a pending receivable for the caller's clinic
func (s *ReceivableService) Create(ctx context.Context, req CreateReceivableRequest) (*ReceivableResponse, error) {
	clinicSeed := uuid.Nil
	if req.ClinicID != nil {
		clinicSeed = *req.ClinicID
	}
	receivable, err := finance.NewAccountReceivable(
		clinicSeed,
		req.PatientName,
		req.Description,
		req.Amount,
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindAccountReceivable, receivable); err != nil {
		return nil, err
	}
	receivable.PatientCPF = req.PatientCPF
	receivable.Procedure = req.Procedure
	receivable.PaymentMethod = finance.ReceivableMethod(req.PaymentMethod)
	receivable.AppointmentID = req.AppointmentID
	receivable.Notes = req.Notes

	if err := s.receivables.Save(ctx, receivable); err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(receivable)
	return &resp, nil
}

// List returns a page of the clinic's receivables
func (s *ReceivableService) List(ctx context.Context, filter ReceivableListFilter) (*shared.Paginated[ReceivableResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAccountReceivable, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	receivables, err := s.receivables.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.receivables.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	items := make([]ReceivableResponse, 0, len(receivables))
	for i := range receivables {
		items = append(items, ToReceivableResponse(&receivables[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one receivable from the caller's clinic
func (s *ReceivableService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*ReceivableResponse, error) {
	receivable, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(receivable)
	return &resp, nil
}

// RegisterReceipt applies a received amount, settling when covered
func (s *ReceivableService) RegisterReceipt(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID, req RegisterPaymentRequest) (*ReceivableResponse, error) {
	receivable, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	at := s.now()
	if req.PaidAt != nil {
		at = *req.PaidAt
	}
	if err := receivable.RegisterReceipt(req.Amount, at); err != nil {
		return nil, err
	}
	if err := s.receivables.Save(ctx, receivable); err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(receivable)
	return &resp, nil
}

// ListOverdue returns the clinic's unsettled receivables past their due date
func (s *ReceivableService) ListOverdue(ctx context.Context, clinicHint *uuid.UUID) ([]ReceivableResponse, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAccountReceivable, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	receivables, err := s.receivables.FindOverdueForClinic(ctx, clinicID, s.now())
	if err != nil {
		return nil, err
	}
	items := make([]ReceivableResponse, 0, len(receivables))
	for i := range receivables {
		items = append(items, ToReceivableResponse(&receivables[i]))
	}
	return items, nil
}

func (s *ReceivableService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*finance.AccountReceivable, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindAccountReceivable, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	receivable, err := s.receivables.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindAccountReceivable, receivable); err != nil {
		return nil, err
	}
	return receivable, nil
}
