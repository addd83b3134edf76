// Package partner implements supplier management. Suppliers are shared
// platform data, visible to every authenticated user.
package partner

import (
	"context"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/partner"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierService handles supplier operations
type SupplierService struct {
	suppliers partner.SupplierRepository
	guard     *guard.Guard
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(suppliers partner.SupplierRepository, g *guard.Guard) *SupplierService {
	return &SupplierService{suppliers: suppliers, guard: g}
}

// List returns a page of suppliers
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) (*shared.Paginated[SupplierResponse], error) {
	f := filter.ToFilter()
	if _, err := s.guard.ScopeRead(ctx, isolation.KindSupplier, &f); err != nil {
		return nil, err
	}

	suppliers, err := s.suppliers.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.suppliers.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		items = append(items, ToSupplierResponse(&suppliers[i]))
	}
	page := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one supplier
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindSupplier); err != nil {
		return nil, err
	}
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Create registers a supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindSupplier); err != nil {
		return nil, err
	}

	supplier, err := partner.NewSupplier(req.Name, req.Slug, req.CNPJ, req.Email)
	if err != nil {
		return nil, err
	}
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	supplier.Description = req.Description
	supplier.Website = req.Website
	if req.MinOrderValue.IsPositive() {
		supplier.MinOrderValue = req.MinOrderValue
	}

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Update modifies a supplier record
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	if _, err := s.guard.Resolve(ctx, isolation.KindSupplier); err != nil {
		return nil, err
	}

	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Description != nil {
		supplier.Description = *req.Description
	}
	if req.Website != nil {
		supplier.Website = *req.Website
	}
	if req.MinOrderValue != nil {
		if req.MinOrderValue.IsNegative() {
			return nil, shared.NewDomainError("INVALID_MIN_ORDER", "Minimum order value cannot be negative")
		}
		supplier.MinOrderValue = *req.MinOrderValue
	}
	if req.Rating != nil {
		supplier.Rating = *req.Rating
	}
	if req.Status != nil {
		supplier.Status = partner.SupplierStatus(*req.Status)
	}
	supplier.Touch()
	supplier.IncrementVersion()

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.guard.Resolve(ctx, isolation.KindSupplier); err != nil {
		return err
	}
	return s.suppliers.Delete(ctx, id)
}
