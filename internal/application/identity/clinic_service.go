package identity

import (
	"context"
	"errors"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClinicService handles clinic administration. Creating, listing and
// suspending clinics is platform administration and requires the admin
// role; regular users may only read their own clinic.
type ClinicService struct {
	clinics identity.ClinicRepository
}

// NewClinicService creates a new ClinicService
func NewClinicService(clinics identity.ClinicRepository) *ClinicService {
	return &ClinicService{clinics: clinics}
}

func (s *ClinicService) requireAdmin(ctx context.Context) (isolation.AccessContext, error) {
	actx, ok := isolation.FromContext(ctx)
	if !ok || !actx.Authenticated() {
		return isolation.AccessContext{}, shared.ErrUnauthorized
	}
	if !actx.IsAdmin() {
		return isolation.AccessContext{}, shared.ErrForbidden
	}
	return actx, nil
}

// Create registers a new clinic. Admin only.
func (s *ClinicService) Create(ctx context.Context, req CreateClinicRequest) (*ClinicResponse, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	if _, err := s.clinics.FindBySlug(ctx, req.Slug); err == nil {
		return nil, shared.NewDomainError("SLUG_TAKEN", "A clinic with this slug already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	clinic, err := identity.NewClinic(req.Name, req.Slug, req.CNPJ, req.Email)
	if err != nil {
		return nil, err
	}
	clinic.Phone = req.Phone
	clinic.Address = req.Address
	clinic.PaymentTerms = req.PaymentTerms
	if req.CreditLimit.IsPositive() {
		clinic.CreditLimit = req.CreditLimit
	}

	if err := s.clinics.Save(ctx, clinic); err != nil {
		return nil, err
	}

	resp := ToClinicResponse(clinic)
	return &resp, nil
}

// List returns a page of clinics. Admin only.
func (s *ClinicService) List(ctx context.Context, filter ClinicListFilter) (*shared.Paginated[ClinicResponse], error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	f := filter.ToFilter()
	clinics, err := s.clinics.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.clinics.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]ClinicResponse, 0, len(clinics))
	for i := range clinics {
		items = append(items, ToClinicResponse(&clinics[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one clinic. Admins may read any clinic; other users
// only the clinic they belong to, with foreign IDs reported not-found.
func (s *ClinicService) GetByID(ctx context.Context, id uuid.UUID) (*ClinicResponse, error) {
	actx, ok := isolation.FromContext(ctx)
	if !ok || !actx.Authenticated() {
		return nil, shared.ErrUnauthorized
	}
	if !actx.IsAdmin() {
		clinicID, resolved := actx.Clinic()
		if !resolved || clinicID != id {
			return nil, shared.ErrNotFound
		}
	}

	clinic, err := s.clinics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToClinicResponse(clinic)
	return &resp, nil
}

// Update modifies clinic contact and credit data. Admin only.
func (s *ClinicService) Update(ctx context.Context, id uuid.UUID, req UpdateClinicRequest) (*ClinicResponse, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	clinic, err := s.clinics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
		}
		clinic.CreditLimit = *req.CreditLimit
	}
	if req.PaymentTerms != nil {
		clinic.PaymentTerms = *req.PaymentTerms
	}
	clinic.Touch()
	clinic.IncrementVersion()

	if err := s.clinics.Save(ctx, clinic); err != nil {
		return nil, err
	}
	resp := ToClinicResponse(clinic)
	return &resp, nil
}

// Suspend blocks a clinic and all of its users. Admin only.
func (s *ClinicService) Suspend(ctx context.Context, id uuid.UUID) (*ClinicResponse, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	clinic, err := s.clinics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	clinic.Suspend()
	if err := s.clinics.Save(ctx, clinic); err != nil {
		return nil, err
	}
	resp := ToClinicResponse(clinic)
	return &resp, nil
}
