package isolation

import (
	"testing"

	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ownedStub is a minimal clinic-owned resource for policy tests
type ownedStub struct {
	clinicID uuid.UUID
}

func (o *ownedStub) OwnerClinic() uuid.UUID         { return o.clinicID }
func (o *ownedStub) AssignClinic(clinicID uuid.UUID) { o.clinicID = clinicID }

func TestRegistry_Validate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Validate())
}

func TestRegistry_PolicyFor(t *testing.T) {
	reg := NewRegistry()

	t.Run("returns policy for every declared kind", func(t *testing.T) {
		for _, kind := range AllKinds() {
			p, err := reg.PolicyFor(kind)
			require.NoError(t, err)
			assert.Equal(t, kind, p.Kind())
		}
	})

	t.Run("errors for undeclared kind", func(t *testing.T) {
		_, err := reg.PolicyFor(ResourceKind("warehouse"))
		assert.Error(t, err)
	})

	t.Run("MustPolicyFor panics for undeclared kind", func(t *testing.T) {
		assert.Panics(t, func() {
			reg.MustPolicyFor(ResourceKind("warehouse"))
		})
	})
}

func TestClinicScopedPolicy_ScopeRead(t *testing.T) {
	reg := NewRegistry()
	policy := reg.MustPolicyFor(KindInventoryItem)
	clinicID := uuid.New()

	t.Run("adds clinic predicate for non-admin", func(t *testing.T) {
		f := shared.DefaultFilter()
		err := policy.ScopeRead(&f, staffContext(clinicID))
		require.NoError(t, err)
		assert.Equal(t, clinicID, f.Filters[ClinicFilterKey])
	})

	t.Run("composes with existing filters", func(t *testing.T) {
		f := shared.DefaultFilter()
		f.Filters["status"] = "in_stock"
		err := policy.ScopeRead(&f, staffContext(clinicID))
		require.NoError(t, err)
		assert.Equal(t, "in_stock", f.Filters["status"])
		assert.Equal(t, clinicID, f.Filters[ClinicFilterKey])
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := shared.DefaultFilter()
		actx := staffContext(clinicID)
		require.NoError(t, policy.ScopeRead(&f, actx))
		require.NoError(t, policy.ScopeRead(&f, actx))
		assert.Equal(t, clinicID, f.Filters[ClinicFilterKey])
		assert.Len(t, f.Filters, 1)
	})

	t.Run("never widens a client-supplied clinic filter", func(t *testing.T) {
		f := shared.DefaultFilter()
		f.Filters[ClinicFilterKey] = uuid.New() // forged
		require.NoError(t, policy.ScopeRead(&f, staffContext(clinicID)))
		assert.Equal(t, clinicID, f.Filters[ClinicFilterKey])
	})

	t.Run("skips scoping for admin", func(t *testing.T) {
		f := shared.DefaultFilter()
		err := policy.ScopeRead(&f, AccessContext{UserID: uuid.New(), Role: RoleAdmin})
		require.NoError(t, err)
		assert.NotContains(t, f.Filters, ClinicFilterKey)
	})

	t.Run("fails closed without clinic", func(t *testing.T) {
		f := shared.DefaultFilter()
		err := policy.ScopeRead(&f, AccessContext{UserID: uuid.New(), Role: RoleStaff})
		assert.ErrorIs(t, err, shared.ErrClinicUnresolved)
	})
}

func TestClinicScopedPolicy_ScopeWrite(t *testing.T) {
	reg := NewRegistry()
	policy := reg.MustPolicyFor(KindOrder)
	clinicID := uuid.New()

	t.Run("forces caller clinic over forged payload value", func(t *testing.T) {
		forged := &ownedStub{clinicID: uuid.New()}
		err := policy.ScopeWrite(forged, staffContext(clinicID))
		require.NoError(t, err)
		assert.Equal(t, clinicID, forged.OwnerClinic())
	})

	t.Run("fails closed without clinic before any write", func(t *testing.T) {
		res := &ownedStub{}
		err := policy.ScopeWrite(res, AccessContext{UserID: uuid.New(), Role: RoleStaff})
		assert.ErrorIs(t, err, shared.ErrClinicUnresolved)
		assert.Equal(t, uuid.Nil, res.OwnerClinic())
	})

	t.Run("admin keeps explicit clinic", func(t *testing.T) {
		target := uuid.New()
		res := &ownedStub{clinicID: target}
		err := policy.ScopeWrite(res, AccessContext{UserID: uuid.New(), Role: RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, target, res.OwnerClinic())
	})

	t.Run("admin without explicit clinic is rejected", func(t *testing.T) {
		err := policy.ScopeWrite(&ownedStub{}, AccessContext{UserID: uuid.New(), Role: RoleAdmin})
		assert.Error(t, err)
	})

	t.Run("rejects resources without ownership", func(t *testing.T) {
		err := policy.ScopeWrite(struct{}{}, staffContext(clinicID))
		assert.Error(t, err)
	})
}

func TestClinicScopedPolicy_CheckOwnership(t *testing.T) {
	reg := NewRegistry()
	policy := reg.MustPolicyFor(KindAppointment)
	clinicID := uuid.New()

	t.Run("passes for owning clinic", func(t *testing.T) {
		res := &ownedStub{clinicID: clinicID}
		assert.NoError(t, policy.CheckOwnership(res, staffContext(clinicID)))
	})

	t.Run("cross-clinic mismatch reads as not-found", func(t *testing.T) {
		res := &ownedStub{clinicID: uuid.New()}
		err := policy.CheckOwnership(res, staffContext(clinicID))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("admin sees any clinic", func(t *testing.T) {
		res := &ownedStub{clinicID: uuid.New()}
		assert.NoError(t, policy.CheckOwnership(res, AccessContext{UserID: uuid.New(), Role: RoleAdmin}))
	})

	t.Run("fails closed without clinic", func(t *testing.T) {
		res := &ownedStub{clinicID: clinicID}
		err := policy.CheckOwnership(res, AccessContext{UserID: uuid.New(), Role: RoleStaff})
		assert.ErrorIs(t, err, shared.ErrClinicUnresolved)
	})
}

func TestSharedPolicy_PassThrough(t *testing.T) {
	reg := NewRegistry()
	clinicA := staffContext(uuid.New())
	clinicB := staffContext(uuid.New())

	for _, kind := range SharedKinds() {
		policy := reg.MustPolicyFor(kind)

		fa, fb := shared.DefaultFilter(), shared.DefaultFilter()
		require.NoError(t, policy.ScopeRead(&fa, clinicA))
		require.NoError(t, policy.ScopeRead(&fb, clinicB))
		assert.Equal(t, fa, fb, "shared kind %s must not be clinic-filtered", kind)

		assert.NoError(t, policy.ScopeWrite(struct{}{}, clinicA))
		assert.NoError(t, policy.CheckOwnership(struct{}{}, clinicB))
	}
}
