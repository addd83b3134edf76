// Package clinicscope provides clinic-level database scoping for GORM.
//
// Every clinic-owned table carries a clinic_id column. This package keeps
// reads and writes inside the caller's clinic in two complementary ways:
// GORM callbacks that rewrite queries with a WHERE clinic_id = ? condition
// derived from the access context, and a ClinicDB wrapper repositories use
// to obtain a pre-scoped handle. Platform administrators bypass the filter;
// an unresolved clinic fails the operation instead of widening it.
//
// Usage:
//
//	db := clinicscope.NewClinicDB(gormDB)
//	db.WithContext(ctx).Find(&items) // WHERE clinic_id = 'xxx' auto-added
package clinicscope

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/isolation"
)

// ErrClinicRequired is returned when the caller's clinic cannot be resolved
var ErrClinicRequired = errors.New("clinic_id is required but not resolved from context")

// ErrInvalidClinicID is returned when the clinic ID is malformed
var ErrInvalidClinicID = errors.New("invalid clinic_id format")

// ClinicScope returns a GORM scope restricting queries to one clinic
func ClinicScope(clinicID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("clinic_id = ?", clinicID)
	}
}

// ClinicDB wraps a GORM handle with clinic scoping derived from the
// access context.
type ClinicDB struct {
	db       *gorm.DB
	required bool
}

// NewClinicDB creates a ClinicDB that fails closed when no clinic is
// resolvable from the context.
func NewClinicDB(db *gorm.DB) *ClinicDB {
	return &ClinicDB{db: db, required: true}
}

// NewOptionalClinicDB creates a ClinicDB that passes queries through
// unscoped when no clinic is resolvable. Only for shared resources.
func NewOptionalClinicDB(db *gorm.DB) *ClinicDB {
	return &ClinicDB{db: db, required: false}
}

// DB returns the underlying GORM handle without clinic scoping.
// Bypasses isolation; reserve for migrations and platform operations.
func (c *ClinicDB) DB() *gorm.DB {
	return c.db
}

// WithContext returns a GORM handle scoped to the clinic in the access
// context. Administrators get an unscoped handle. When no clinic is
// resolvable and scoping is required, the returned handle errors on any
// operation instead of running unscoped.
func (c *ClinicDB) WithContext(ctx context.Context) *gorm.DB {
	actx, ok := isolation.FromContext(ctx)
	if !ok {
		return c.failClosed(ctx)
	}
	if actx.IsAdmin() {
		return c.db.WithContext(ctx)
	}

	clinicID, resolved := actx.Clinic()
	if !resolved {
		return c.failClosed(ctx)
	}
	return c.db.WithContext(ctx).Scopes(ClinicScope(clinicID))
}

func (c *ClinicDB) failClosed(ctx context.Context) *gorm.DB {
	db := c.db.WithContext(ctx)
	if c.required {
		_ = db.AddError(ErrClinicRequired)
	}
	return db
}

// ForClinic returns a GORM handle scoped to an explicit clinic ID.
func (c *ClinicDB) ForClinic(ctx context.Context, clinicID uuid.UUID) *gorm.DB {
	if clinicID == uuid.Nil {
		return c.failClosed(ctx)
	}
	return c.db.WithContext(ctx).Scopes(ClinicScope(clinicID))
}

// Transaction runs fn inside a transaction scoped to the caller's clinic.
// Administrators run unscoped.
func (c *ClinicDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	actx, ok := isolation.FromContext(ctx)
	if !ok {
		if c.required {
			return ErrClinicRequired
		}
		return c.db.WithContext(ctx).Transaction(fn)
	}

	var scope func(*gorm.DB) *gorm.DB
	if !actx.IsAdmin() {
		clinicID, resolved := actx.Clinic()
		if !resolved {
			if c.required {
				return ErrClinicRequired
			}
		} else {
			scope = ClinicScope(clinicID)
		}
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if scope != nil {
			tx = tx.Scopes(scope)
		}
		return fn(tx)
	})
}

// Unscoped returns the underlying handle without clinic scoping.
// Reserve for system-level operations.
func (c *ClinicDB) Unscoped() *gorm.DB {
	return c.db
}
