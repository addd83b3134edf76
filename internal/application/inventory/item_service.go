// Package inventory implements clinic stock management. Every item and
// movement belongs to exactly one clinic, and every operation here is
// checked against the caller's clinic before it reaches storage.
package inventory

import (
	"context"
	"errors"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/inventory"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemService handles inventory item operations
type ItemService struct {
	items inventory.ItemRepository
	guard *guard.Guard
}

// NewItemService creates a new ItemService
func NewItemService(items inventory.ItemRepository, g *guard.Guard) *ItemService {
	return &ItemService{items: items, guard: g}
}

// List returns a page of the caller's clinic's items. Admins read
// across clinics unless the filter names one.
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) (*shared.Paginated[ItemResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInventoryItem, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.items.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one item from the caller's clinic. An ID belonging to
// another clinic is indistinguishable from a missing one.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*ItemResponse, error) {
	item, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByProduct returns the clinic's stock record for one product
func (s *ItemService) GetByProduct(ctx context.Context, productID uuid.UUID, clinicHint *uuid.UUID) (*ItemResponse, error) {
	f := filterWithClinicHint(clinicHint)
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInventoryItem, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByProductForClinic(ctx, clinicID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindInventoryItem, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Create stocks a product for a clinic. The owning clinic comes from
// the caller, never from the payload, except for admins who must name
// one explicitly.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	clinicSeed := uuid.Nil
	if req.ClinicID != nil {
		clinicSeed = *req.ClinicID
	}
	item, err := inventory.NewItem(clinicSeed, req.ProductID, req.Quantity, req.UnitCost)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.ScopeWrite(ctx, isolation.KindInventoryItem, item); err != nil {
		return nil, err
	}
	if err := item.SetThresholds(req.MinQuantity, req.MaxQuantity); err != nil {
		return nil, err
	}
	item.Location = req.Location

	if existing, err := s.items.FindByProductForClinic(ctx, item.ClinicID, req.ProductID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ITEM_EXISTS", "This product is already stocked for the clinic")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Update modifies thresholds and location of an item in the caller's clinic
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.fetch(ctx, id, clinicHint)
	if err != nil {
		return nil, err
	}

	minQty := item.MinQuantity
	maxQty := item.MaxQuantity
	if req.MinQuantity != nil {
		minQty = *req.MinQuantity
	}
	if req.MaxQuantity != nil {
		maxQty = *req.MaxQuantity
	}
	if err := item.SetThresholds(minQty, maxQty); err != nil {
		return nil, err
	}
	if req.Location != nil {
		item.Location = *req.Location
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// fetch loads an item keyed by the caller's clinic and re-verifies
// ownership of what came back.
func (s *ItemService) fetch(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*inventory.Item, error) {
	f := filterWithClinicHint(clinicHint)
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInventoryItem, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	item, err := s.items.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindInventoryItem, item); err != nil {
		return nil, err
	}
	return item, nil
}

func filterWithClinicHint(clinicHint *uuid.UUID) shared.Filter {
	f := shared.DefaultFilter()
	if clinicHint != nil {
		f.Filters[isolation.ClinicFilterKey] = *clinicHint
	}
	return f
}
