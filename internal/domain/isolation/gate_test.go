package isolation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffContext(clinicID uuid.UUID) AccessContext {
	return AccessContext{
		UserID:   uuid.New(),
		Role:     RoleStaff,
		ClinicID: &clinicID,
	}
}

func TestCheck_Anonymous(t *testing.T) {
	for _, kind := range AllKinds() {
		d := Check(AccessContext{}, kind)
		assert.False(t, d.Allow, "anonymous access to %s must be denied", kind)
		assert.Nil(t, d.Scope)
	}
}

func TestCheck_SharedKinds(t *testing.T) {
	t.Run("allows any authenticated user without scope", func(t *testing.T) {
		actx := staffContext(uuid.New())
		for _, kind := range SharedKinds() {
			d := Check(actx, kind)
			assert.True(t, d.Allow)
			assert.Nil(t, d.Scope)
		}
	})

	t.Run("allows user without clinic binding", func(t *testing.T) {
		actx := AccessContext{UserID: uuid.New(), Role: RoleStaff}
		d := Check(actx, KindProduct)
		assert.True(t, d.Allow)
		assert.Nil(t, d.Scope)
	})
}

func TestCheck_ClinicScopedKinds(t *testing.T) {
	clinicID := uuid.New()

	t.Run("scopes non-admin to their clinic", func(t *testing.T) {
		actx := staffContext(clinicID)
		for _, kind := range ClinicScopedKinds() {
			d := Check(actx, kind)
			require.True(t, d.Allow, "kind %s", kind)
			require.NotNil(t, d.Scope, "kind %s", kind)
			assert.Equal(t, clinicID, d.Scope.ClinicID)
		}
	})

	t.Run("admin bypasses scoping", func(t *testing.T) {
		actx := AccessContext{UserID: uuid.New(), Role: RoleAdmin}
		for _, kind := range ClinicScopedKinds() {
			d := Check(actx, kind)
			assert.True(t, d.Allow)
			assert.Nil(t, d.Scope)
		}
	})

	t.Run("denies non-admin without clinic", func(t *testing.T) {
		actx := AccessContext{UserID: uuid.New(), Role: RoleManager}
		for _, kind := range ClinicScopedKinds() {
			d := Check(actx, kind)
			assert.False(t, d.Allow, "kind %s must fail closed", kind)
			assert.Nil(t, d.Scope)
		}
	})

	t.Run("denies nil-uuid clinic binding", func(t *testing.T) {
		nilClinic := uuid.Nil
		actx := AccessContext{UserID: uuid.New(), Role: RoleStaff, ClinicID: &nilClinic}
		d := Check(actx, KindOrder)
		assert.False(t, d.Allow)
	})

	t.Run("unknown role is not admin", func(t *testing.T) {
		actx := AccessContext{UserID: uuid.New(), Role: Role("superadmin")}
		d := Check(actx, KindInvoice)
		assert.False(t, d.Allow, "indeterminate admin check must deny, not bypass")
	})
}

func TestCheck_UndeclaredKind(t *testing.T) {
	actx := AccessContext{UserID: uuid.New(), Role: RoleAdmin}
	d := Check(actx, ResourceKind("warehouse"))
	assert.False(t, d.Allow)
}

func TestDecisionContextRoundTrip(t *testing.T) {
	clinicID := uuid.New()
	d := Decision{Allow: true, Scope: &Scope{ClinicID: clinicID}}

	ctx := WithDecision(context.Background(), d)
	got, ok := DecisionFromContext(ctx)

	require.True(t, ok)
	assert.Equal(t, d, got)

	_, ok = DecisionFromContext(context.Background())
	assert.False(t, ok)
}

func TestAccessContext_Clinic(t *testing.T) {
	t.Run("resolved clinic", func(t *testing.T) {
		clinicID := uuid.New()
		actx := staffContext(clinicID)
		got, ok := actx.Clinic()
		assert.True(t, ok)
		assert.Equal(t, clinicID, got)
	})

	t.Run("nil pointer is unresolved", func(t *testing.T) {
		actx := AccessContext{UserID: uuid.New(), Role: RoleStaff}
		_, ok := actx.Clinic()
		assert.False(t, ok)
	})
}
