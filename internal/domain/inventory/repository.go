package inventory

import (
	"context"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemRepository provides clinic-keyed access to inventory items
type ItemRepository interface {
	shared.ClinicRepository[Item]
	FindByProductForClinic(ctx context.Context, clinicID, productID uuid.UUID) (*Item, error)
}

// MovementRepository provides clinic-keyed access to inventory movements
type MovementRepository interface {
	shared.ClinicRepository[Movement]
}
