package identity

import (
	"context"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClinicRepository provides access to clinic records
type ClinicRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Clinic, error)
	FindBySlug(ctx context.Context, slug string) (*Clinic, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Clinic, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, clinic *Clinic) error
}

// UserRepository provides access to user records
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	Save(ctx context.Context, user *User) error
}
