package isolation

import (
	"context"

	"github.com/google/uuid"
)

// Role is the coarse-grained role carried by a principal
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleStaff    Role = "staff"
	RoleSupplier Role = "supplier"
)

// Valid reports whether the role is one of the declared roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleSupplier:
		return true
	}
	return false
}

// AccessContext is the request-scoped access state derived from the
// authenticated principal. It is built once per request by the resolver
// middleware and threaded explicitly into the gate and the policies;
// it is never persisted.
type AccessContext struct {
	UserID uuid.UUID
	Role   Role
	// ClinicID is the resolved clinic binding. Nil means the principal has
	// no clinic; for clinic-scoped operations that is a denial, never an
	// unscoped pass.
	ClinicID *uuid.UUID
}

// Authenticated reports whether the context belongs to a real principal
func (a AccessContext) Authenticated() bool {
	return a.UserID != uuid.Nil
}

// IsAdmin reports whether the principal bypasses clinic scoping.
// The check is strict equality; any other or unknown role is non-admin.
func (a AccessContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Clinic returns the resolved clinic ID and whether one is resolved
func (a AccessContext) Clinic() (uuid.UUID, bool) {
	if a.ClinicID == nil || *a.ClinicID == uuid.Nil {
		return uuid.Nil, false
	}
	return *a.ClinicID, true
}

type accessContextKey struct{}

// WithAccessContext stores the access context in a request context
func WithAccessContext(ctx context.Context, actx AccessContext) context.Context {
	return context.WithValue(ctx, accessContextKey{}, actx)
}

// FromContext retrieves the access context from a request context.
// The second return value is false for anonymous requests, where no
// context was resolved at all.
func FromContext(ctx context.Context) (AccessContext, bool) {
	actx, ok := ctx.Value(accessContextKey{}).(AccessContext)
	return actx, ok
}
