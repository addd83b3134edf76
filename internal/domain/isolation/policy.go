package isolation

import (
	"fmt"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClinicOwned is implemented by every clinic-scoped domain aggregate
// (via shared.ClinicAggregateRoot).
type ClinicOwned interface {
	OwnerClinic() uuid.UUID
	AssignClinic(clinicID uuid.UUID)
}

// ClinicFilterKey is the filter key the read path scopes on. It matches
// the clinic_id column of every clinic-scoped table.
const ClinicFilterKey = "clinic_id"

// Policy is the per-kind isolation strategy. Application services apply
// it around every operation on the kind:
//
//   - ScopeRead narrows a list query to the caller's clinic,
//   - ScopeWrite forces ownership on a payload before it is stored,
//   - CheckOwnership verifies a fetched instance after a by-id lookup.
//
// The explicit CheckOwnership call is deliberate defense in depth: it
// holds even if the declarative query filter is bypassed for an
// operation.
type Policy interface {
	Kind() ResourceKind
	ScopeRead(f *shared.Filter, actx AccessContext) error
	ScopeWrite(resource any, actx AccessContext) error
	CheckOwnership(resource any, actx AccessContext) error
}

// clinicScopedPolicy enforces clinic ownership for clinic-scoped kinds
type clinicScopedPolicy struct {
	kind ResourceKind
}

func (p clinicScopedPolicy) Kind() ResourceKind {
	return p.kind
}

// ScopeRead pins the filter's clinic predicate to the caller's clinic.
// A caller-supplied hint naming a different clinic is a denial, not a
// retarget; applying the scope twice yields the same filter.
func (p clinicScopedPolicy) ScopeRead(f *shared.Filter, actx AccessContext) error {
	if actx.IsAdmin() {
		return nil
	}
	clinicID, ok := actx.Clinic()
	if !ok {
		return shared.ErrClinicUnresolved
	}
	if hinted, ok := f.Filters[ClinicFilterKey].(uuid.UUID); ok && hinted != clinicID {
		return shared.ErrForbidden
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	f.Filters[ClinicFilterKey] = clinicID
	return nil
}

// ScopeWrite overwrites the payload's clinic with the caller's resolved
// clinic. Client-supplied clinic values are discarded, not merged.
// Admins create on behalf of an explicit clinic, which must be present.
func (p clinicScopedPolicy) ScopeWrite(resource any, actx AccessContext) error {
	owned, ok := resource.(ClinicOwned)
	if !ok {
		return fmt.Errorf("resource kind %s does not carry clinic ownership", p.kind)
	}
	if actx.IsAdmin() {
		if owned.OwnerClinic() == uuid.Nil {
			return shared.NewDomainError("CLINIC_REQUIRED", "A clinic must be specified")
		}
		return nil
	}
	clinicID, ok := actx.Clinic()
	if !ok {
		return shared.ErrClinicUnresolved
	}
	owned.AssignClinic(clinicID)
	return nil
}

// CheckOwnership verifies a fetched instance belongs to the caller's
// clinic. A mismatch is reported as not-found so probing another
// clinic's IDs is indistinguishable from true absence.
func (p clinicScopedPolicy) CheckOwnership(resource any, actx AccessContext) error {
	if actx.IsAdmin() {
		return nil
	}
	owned, ok := resource.(ClinicOwned)
	if !ok {
		return fmt.Errorf("resource kind %s does not carry clinic ownership", p.kind)
	}
	clinicID, resolved := actx.Clinic()
	if !resolved {
		return shared.ErrClinicUnresolved
	}
	if owned.OwnerClinic() != clinicID {
		return shared.ErrNotFound
	}
	return nil
}

// sharedPolicy is the pass-through strategy for catalog kinds
type sharedPolicy struct {
	kind ResourceKind
}

func (p sharedPolicy) Kind() ResourceKind {
	return p.kind
}

func (p sharedPolicy) ScopeRead(_ *shared.Filter, _ AccessContext) error {
	return nil
}

func (p sharedPolicy) ScopeWrite(_ any, _ AccessContext) error {
	return nil
}

func (p sharedPolicy) CheckOwnership(_ any, _ AccessContext) error {
	return nil
}

// Registry is the static policy table keyed by resource kind
type Registry struct {
	policies map[ResourceKind]Policy
}

// NewRegistry builds the policy table for every declared kind
func NewRegistry() *Registry {
	policies := make(map[ResourceKind]Policy, len(AllKinds()))
	for _, kind := range ClinicScopedKinds() {
		policies[kind] = clinicScopedPolicy{kind: kind}
	}
	for _, kind := range SharedKinds() {
		policies[kind] = sharedPolicy{kind: kind}
	}
	return &Registry{policies: policies}
}

// PolicyFor returns the policy for a kind. Unknown kinds are an error,
// never an implicit pass-through.
func (r *Registry) PolicyFor(kind ResourceKind) (Policy, error) {
	p, ok := r.policies[kind]
	if !ok {
		return nil, fmt.Errorf("no isolation policy registered for kind %q", kind)
	}
	return p, nil
}

// MustPolicyFor returns the policy for a kind or panics. Use at wiring
// time where the kind is a compile-time constant.
func (r *Registry) MustPolicyFor(kind ResourceKind) Policy {
	p, err := r.PolicyFor(kind)
	if err != nil {
		panic(err)
	}
	return p
}

// Validate checks the table is exhaustive and consistent. It is called
// at startup so a kind added without a policy fails boot instead of
// silently skipping enforcement.
func (r *Registry) Validate() error {
	for _, kind := range AllKinds() {
		p, ok := r.policies[kind]
		if !ok {
			return fmt.Errorf("resource kind %q has no isolation policy", kind)
		}
		if p.Kind() != kind {
			return fmt.Errorf("policy for kind %q reports kind %q", kind, p.Kind())
		}
		_, clinicScoped := p.(clinicScopedPolicy)
		if kind.ClinicScoped() != clinicScoped {
			return fmt.Errorf("policy class for kind %q does not match its declaration", kind)
		}
	}
	for kind := range r.policies {
		if !kind.Valid() {
			return fmt.Errorf("policy registered for undeclared kind %q", kind)
		}
	}
	return nil
}
