package finance

import (
	"context"
	"errors"
	"time"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/partner"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles fiscal documents
type InvoiceService struct {
	invoices  finance.InvoiceRepository
	suppliers partner.SupplierRepository
	guard     *guard.Guard
	now       func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices finance.InvoiceRepository, suppliers partner.SupplierRepository, g *guard.Guard) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		suppliers: suppliers,
		guard:     g,
		now:       time.Now,
	}
}

// Create issues an invoice against the caller's clinic. Invoice numbers
// are sequential per year across the whole platform.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "The supplier does not exist")
		}
		return nil, err
	}

	year := s.now().Year()
	seq, err := s.invoices.CountByYear(ctx, year)
	if err != nil {
		return nil, err
	}

	clinicSeed := uuid.Nil
	if req.ClinicID != nil {
		clinicSeed = *req.ClinicID
	}
	invoice, err := finance.NewInvoice(
		clinicSeed,
		req.SupplierID,
		finance.NewInvoiceNumber(year, int(seq)+1),
		finance.InvoiceType(req.Type),
		req.Subtotal,
		req.Tax,
		req.IssueDate,
	)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindInvoice, invoice); err != nil {
		return nil, err
	}
	invoice.OrderID = req.OrderID
	invoice.AccessKey = req.AccessKey
	invoice.DueDate = req.DueDate
	invoice.Notes = req.Notes

	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List returns a page of the clinic's invoices
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInvoice, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoices.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.invoices.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, ToInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one invoice from the caller's clinic
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// MarkPaid records the payment time on an issued invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	if err := invoice.MarkPaid(s.now()); err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

func (s *InvoiceService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*finance.Invoice, error) {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInvoice, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	invoice, err := s.invoices.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindInvoice, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}
