package guard

import (
	"context"
	"testing"

	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staffContext(clinicID uuid.UUID) context.Context {
	return isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID:   uuid.New(),
		Role:     isolation.RoleStaff,
		ClinicID: &clinicID,
	})
}

func adminContext() context.Context {
	return isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID: uuid.New(),
		Role:   isolation.RoleAdmin,
	})
}

func TestResolveAnonymousIsUnauthorized(t *testing.T) {
	g := New(isolation.NewRegistry())

	_, err := g.Resolve(context.Background(), isolation.KindInventoryItem)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestResolveWithoutClinicFailsClosed(t *testing.T) {
	g := New(isolation.NewRegistry())
	ctx := isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID: uuid.New(),
		Role:   isolation.RoleStaff,
	})

	_, err := g.Resolve(ctx, isolation.KindInventoryItem)
	assert.ErrorIs(t, err, shared.ErrClinicUnresolved)

	// The same caller may still touch shared kinds.
	_, err = g.Resolve(ctx, isolation.KindProduct)
	assert.NoError(t, err)
}

func TestResolveHonorsStashedDenial(t *testing.T) {
	g := New(isolation.NewRegistry())
	clinicID := uuid.New()
	ctx := isolation.WithDecision(staffContext(clinicID), isolation.Decision{Allow: false})

	_, err := g.Resolve(ctx, isolation.KindOrder)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestScopeReadPinsFilterToCallerClinic(t *testing.T) {
	g := New(isolation.NewRegistry())
	clinicID := uuid.New()

	f := shared.DefaultFilter()
	actx, err := g.ScopeRead(staffContext(clinicID), isolation.KindInventoryItem, &f)
	require.NoError(t, err)
	assert.Equal(t, clinicID, f.Filters[isolation.ClinicFilterKey])

	got, err := g.ReadClinic(actx, f)
	require.NoError(t, err)
	assert.Equal(t, clinicID, got)
}

func TestScopeReadDeniesForeignClinicHint(t *testing.T) {
	g := New(isolation.NewRegistry())
	clinicID := uuid.New()

	f := shared.DefaultFilter()
	f.Filters[isolation.ClinicFilterKey] = uuid.New()

	_, err := g.ScopeRead(staffContext(clinicID), isolation.KindInventoryItem, &f)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestScopeReadAppliesStashedScope(t *testing.T) {
	g := New(isolation.NewRegistry())
	gateClinic := uuid.New()

	// The gate's scope, not the caller snapshot, is what gets applied.
	ctx := isolation.WithDecision(staffContext(uuid.New()), isolation.Decision{
		Allow: true,
		Scope: &isolation.Scope{ClinicID: gateClinic},
	})

	f := shared.DefaultFilter()
	actx, err := g.ScopeRead(ctx, isolation.KindInventoryItem, &f)
	require.NoError(t, err)
	assert.Equal(t, gateClinic, f.Filters[isolation.ClinicFilterKey])

	got, err := g.ReadClinic(actx, f)
	require.NoError(t, err)
	assert.Equal(t, gateClinic, got)
}

func TestReadClinicAdminSpansClinics(t *testing.T) {
	g := New(isolation.NewRegistry())

	f := shared.DefaultFilter()
	actx, err := g.ScopeRead(adminContext(), isolation.KindInventoryItem, &f)
	require.NoError(t, err)

	got, err := g.ReadClinic(actx, f)
	require.NoError(t, err)
	assert.Equal(t, shared.AllClinics, got)

	target := uuid.New()
	f.Filters[isolation.ClinicFilterKey] = target.String()
	got, err = g.ReadClinic(actx, f)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

type ownedResource struct {
	clinicID uuid.UUID
}

func (r *ownedResource) OwnerClinic() uuid.UUID    { return r.clinicID }
func (r *ownedResource) AssignClinic(id uuid.UUID) { r.clinicID = id }

func TestScopeWriteOverwritesForgedClinic(t *testing.T) {
	g := New(isolation.NewRegistry())
	clinicID := uuid.New()

	resource := &ownedResource{clinicID: uuid.New()}
	_, err := g.ScopeWrite(staffContext(clinicID), isolation.KindOrder, resource)
	require.NoError(t, err)
	assert.Equal(t, clinicID, resource.clinicID)
}

func TestCheckOwnershipMismatchIsNotFound(t *testing.T) {
	g := New(isolation.NewRegistry())
	clinicID := uuid.New()

	err := g.CheckOwnership(staffContext(clinicID), isolation.KindOrder, &ownedResource{clinicID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = g.CheckOwnership(staffContext(clinicID), isolation.KindOrder, &ownedResource{clinicID: clinicID})
	assert.NoError(t, err)
}
