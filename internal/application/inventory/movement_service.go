package inventory

import (
	"context"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/inventory"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementService records and queries stock movements. Recording a
// movement adjusts the parent item's quantity; both writes happen in
// one transaction.
type MovementService struct {
	movements inventory.MovementRepository
	txScope   TransactionScope
	guard     *guard.Guard
}

// NewMovementService creates a new MovementService
func NewMovementService(movements inventory.MovementRepository, txScope TransactionScope, g *guard.Guard) *MovementService {
	return &MovementService{movements: movements, txScope: txScope, guard: g}
}

// Record applies a stock change to an item and stores the audit
// movement atomically. The item is loaded keyed by the caller's
// clinic, so an item ID from another clinic reads as not-found.
func (s *MovementService) Record(ctx context.Context, req RecordMovementRequest) (*MovementResponse, error) {
	f := filterWithClinicHint(req.ClinicID)
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInventoryMovement, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	var movement *inventory.Movement
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByIDForClinic(ctx, clinicID, req.ItemID)
		if err != nil {
			return err
		}
		if err := s.guard.CheckOwnership(ctx, isolation.KindInventoryItem, item); err != nil {
			return err
		}

		movement, err = inventory.NewMovement(item, inventory.MovementType(req.Type), req.Quantity, inventory.MovementReason(req.Reason))
		if err != nil {
			return err
		}
		movement.ReferenceType = req.ReferenceType
		movement.ReferenceID = req.ReferenceID
		movement.Notes = req.Notes
		movement.UserID = &actx.UserID

		if err := repos.Items().Save(ctx, item); err != nil {
			return err
		}
		return repos.Movements().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// List returns a page of the clinic's movements
func (s *MovementService) List(ctx context.Context, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	f := filter.ToFilter()
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInventoryMovement, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	movements, err := s.movements.FindAllForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.movements.CountForClinic(ctx, clinicID, f)
	if err != nil {
		return nil, err
	}

	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	page := shared.NewPaginated(responses, total, f.Page, f.PageSize)
	return &page, nil
}

// GetByID returns one movement from the caller's clinic
func (s *MovementService) GetByID(ctx context.Context, id uuid.UUID, clinicHint *uuid.UUID) (*MovementResponse, error) {
	f := filterWithClinicHint(clinicHint)
	actx, err := s.guard.ScopeRead(ctx, isolation.KindInventoryMovement, &f)
	if err != nil {
		return nil, err
	}
	clinicID, err := s.guard.ReadClinic(actx, f)
	if err != nil {
		return nil, err
	}

	movement, err := s.movements.FindByIDForClinic(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.CheckOwnership(ctx, isolation.KindInventoryMovement, movement); err != nil {
		return nil, err
	}
	resp := ToMovementResponse(movement)
	return &resp, nil
}
