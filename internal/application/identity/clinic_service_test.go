package identity

import (
	"context"
	"testing"

	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adminCtx() context.Context {
	return isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID: uuid.New(),
		Role:   isolation.RoleAdmin,
	})
}

func staffCtx(clinicID uuid.UUID) context.Context {
	return isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID:   uuid.New(),
		Role:     isolation.RoleStaff,
		ClinicID: &clinicID,
	})
}

func TestCreateClinicRequiresAdmin(t *testing.T) {
	clinics := new(MockClinicRepository)
	svc := NewClinicService(clinics)

	req := CreateClinicRequest{Name: "Clinic", Slug: "clinic", CNPJ: "12.345.678/0001-90", Email: "c@example.com"}

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)

	_, err = svc.Create(staffCtx(uuid.New()), req)
	assert.ErrorIs(t, err, shared.ErrForbidden)
	clinics.AssertNotCalled(t, "Save")
}

func TestCreateClinicSlugTaken(t *testing.T) {
	clinics := new(MockClinicRepository)
	svc := NewClinicService(clinics)

	existing := newActiveClinic(t)
	clinics.On("FindBySlug", mock.Anything, "test-clinic").Return(existing, nil)

	_, err := svc.Create(adminCtx(), CreateClinicRequest{
		Name: "Another", Slug: "test-clinic", CNPJ: "98.765.432/0001-10", Email: "a@example.com",
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "SLUG_TAKEN", derr.Code)
}

func TestCreateClinicSuccess(t *testing.T) {
	clinics := new(MockClinicRepository)
	svc := NewClinicService(clinics)

	clinics.On("FindBySlug", mock.Anything, "fresh-clinic").Return(nil, shared.ErrNotFound)
	clinics.On("Save", mock.Anything, mock.AnythingOfType("*identity.Clinic")).Return(nil)

	resp, err := svc.Create(adminCtx(), CreateClinicRequest{
		Name: "Fresh Clinic", Slug: "fresh-clinic", CNPJ: "11.222.333/0001-44", Email: "fresh@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh-clinic", resp.Slug)
	assert.Equal(t, string(identity.ClinicStatusActive), resp.Status)
}

func TestListClinicsRequiresAdmin(t *testing.T) {
	clinics := new(MockClinicRepository)
	svc := NewClinicService(clinics)

	_, err := svc.List(staffCtx(uuid.New()), ClinicListFilter{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestGetClinicByIDOwnClinicOnly(t *testing.T) {
	clinics := new(MockClinicRepository)
	svc := NewClinicService(clinics)

	clinic := newActiveClinic(t)
	clinics.On("FindByID", mock.Anything, clinic.ID).Return(clinic, nil)

	// Member of the clinic can read it.
	resp, err := svc.GetByID(staffCtx(clinic.ID), clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, clinic.ID, resp.ID)

	// A user from another clinic gets not-found, not forbidden.
	_, err = svc.GetByID(staffCtx(uuid.New()), clinic.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Admin can read any clinic.
	resp, err = svc.GetByID(adminCtx(), clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, clinic.ID, resp.ID)
}

func TestSuspendClinic(t *testing.T) {
	clinics := new(MockClinicRepository)
	svc := NewClinicService(clinics)

	clinic := newActiveClinic(t)
	clinics.On("FindByID", mock.Anything, clinic.ID).Return(clinic, nil)
	clinics.On("Save", mock.Anything, clinic).Return(nil)

	resp, err := svc.Suspend(adminCtx(), clinic.ID)
	require.NoError(t, err)
	assert.Equal(t, string(identity.ClinicStatusSuspended), resp.Status)
}
