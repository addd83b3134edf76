package isolation

import (
	"context"

	"github.com/google/uuid"
)

// Scope is the predicate the enforcement layer applies to reads of a
// clinic-scoped kind: rows must satisfy clinic_id = ClinicID.
type Scope struct {
	ClinicID uuid.UUID
}

// Decision is the outcome of the authorization gate for one operation
type Decision struct {
	Allow bool
	// Scope is nil for shared kinds and for admin principals; non-nil
	// for a non-admin principal acting on a clinic-scoped kind.
	Scope *Scope
}

// Check is the authorization gate. It decides whether the principal may
// operate on the given kind and, when scoping applies, which clinic the
// operation must be restricted to.
//
// The decision table is fail-closed: anything that is not an explicit
// allow is a deny. In particular a non-admin principal without a clinic
// binding is denied clinic-scoped access rather than granted an
// unfiltered view.
func Check(actx AccessContext, kind ResourceKind) Decision {
	if !actx.Authenticated() {
		return Decision{Allow: false}
	}

	if kind.Shared() {
		return Decision{Allow: true}
	}

	if !kind.ClinicScoped() {
		// Undeclared kind: deny rather than guess.
		return Decision{Allow: false}
	}

	if actx.IsAdmin() {
		return Decision{Allow: true}
	}

	clinicID, ok := actx.Clinic()
	if !ok {
		return Decision{Allow: false}
	}

	return Decision{Allow: true, Scope: &Scope{ClinicID: clinicID}}
}

type decisionKey struct{}

// WithDecision records the gate decision in the request context so the
// enforcement layer reads the stashed scope instead of recomputing it.
func WithDecision(ctx context.Context, d Decision) context.Context {
	return context.WithValue(ctx, decisionKey{}, d)
}

// DecisionFromContext returns the stashed gate decision, if any
func DecisionFromContext(ctx context.Context) (Decision, bool) {
	d, ok := ctx.Value(decisionKey{}).(Decision)
	return d, ok
}
