// Package guard bundles the isolation policy registry into the helpers
// application services call around every operation on a declared
// resource kind.
package guard

import (
	"context"

	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Guard gates service operations on the resource-kind policy table.
// Every service method resolves the caller through it before touching a
// repository, so enforcement does not depend on any single middleware
// having run.
type Guard struct {
	policies *isolation.Registry
}

// New creates a Guard over the given policy registry
func New(policies *isolation.Registry) *Guard {
	return &Guard{policies: policies}
}

// Resolve returns the caller's access context if the gate allows the
// operation on the kind. A stashed middleware decision is honored when
// present; otherwise the gate is evaluated here. Denials are
// unauthorized for anonymous callers and forbidden for everyone else.
func (g *Guard) Resolve(ctx context.Context, kind isolation.ResourceKind) (isolation.AccessContext, error) {
	actx, ok := isolation.FromContext(ctx)
	if !ok || !actx.Authenticated() {
		return isolation.AccessContext{}, shared.ErrUnauthorized
	}

	decision, stashed := isolation.DecisionFromContext(ctx)
	if !stashed {
		decision = isolation.Check(actx, kind)
	}
	if !decision.Allow {
		if kind.ClinicScoped() && !actx.IsAdmin() {
			if _, resolved := actx.Clinic(); !resolved {
				return isolation.AccessContext{}, shared.ErrClinicUnresolved
			}
		}
		return isolation.AccessContext{}, shared.ErrForbidden
	}
	return actx, nil
}

// ScopeRead resolves the caller and narrows the filter to their clinic.
// A scope stashed by the gate middleware is applied as-is; without one
// the kind's policy derives the scope from the caller. The returned
// context is the resolved caller.
func (g *Guard) ScopeRead(ctx context.Context, kind isolation.ResourceKind, f *shared.Filter) (isolation.AccessContext, error) {
	actx, err := g.Resolve(ctx, kind)
	if err != nil {
		return isolation.AccessContext{}, err
	}
	if decision, ok := isolation.DecisionFromContext(ctx); ok && decision.Scope != nil {
		if hinted, ok := f.Filters[isolation.ClinicFilterKey].(uuid.UUID); ok && hinted != decision.Scope.ClinicID {
			return isolation.AccessContext{}, shared.ErrForbidden
		}
		if f.Filters == nil {
			f.Filters = make(map[string]interface{})
		}
		f.Filters[isolation.ClinicFilterKey] = decision.Scope.ClinicID
		return actx, nil
	}
	policy, err := g.policies.PolicyFor(kind)
	if err != nil {
		return isolation.AccessContext{}, err
	}
	if err := policy.ScopeRead(f, actx); err != nil {
		return isolation.AccessContext{}, err
	}
	return actx, nil
}

// ReadClinic extracts the clinic a scoped read must be keyed by. For
// non-admin callers ScopeRead has already pinned it to their own
// clinic; admins read one clinic when the filter names it and the whole
// platform otherwise.
func (g *Guard) ReadClinic(actx isolation.AccessContext, f shared.Filter) (uuid.UUID, error) {
	if v, ok := f.Filters[isolation.ClinicFilterKey]; ok {
		switch id := v.(type) {
		case uuid.UUID:
			if id != uuid.Nil {
				return id, nil
			}
		case string:
			parsed, err := uuid.Parse(id)
			if err != nil {
				return uuid.Nil, shared.NewDomainError("INVALID_CLINIC_ID", "Clinic ID is not a valid UUID")
			}
			return parsed, nil
		}
	}
	if actx.IsAdmin() {
		return shared.AllClinics, nil
	}
	if clinicID, ok := actx.Clinic(); ok {
		return clinicID, nil
	}
	return uuid.Nil, shared.ErrClinicUnresolved
}

// ScopeWrite resolves the caller and forces clinic ownership onto the
// payload per the kind's policy. Client-supplied clinic values are
// overwritten for non-admin callers.
func (g *Guard) ScopeWrite(ctx context.Context, kind isolation.ResourceKind, resource any) (isolation.AccessContext, error) {
	actx, err := g.Resolve(ctx, kind)
	if err != nil {
		return isolation.AccessContext{}, err
	}
	policy, err := g.policies.PolicyFor(kind)
	if err != nil {
		return isolation.AccessContext{}, err
	}
	if err := policy.ScopeWrite(resource, actx); err != nil {
		return isolation.AccessContext{}, err
	}
	return actx, nil
}

// CheckOwnership verifies a fetched instance belongs to the caller's
// clinic. Cross-clinic hits surface as not-found.
func (g *Guard) CheckOwnership(ctx context.Context, kind isolation.ResourceKind, resource any) error {
	actx, err := g.Resolve(ctx, kind)
	if err != nil {
		return err
	}
	policy, err := g.policies.PolicyFor(kind)
	if err != nil {
		return err
	}
	return policy.CheckOwnership(resource, actx)
}
