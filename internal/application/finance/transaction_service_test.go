package finance

import (
	"context"
	"fmt"
	"testing"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/identity"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransactionRepository is a mock implementation of finance.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*finance.Transaction, error) {
	args := m.Called(ctx, clinicID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]finance.Transaction, error) {
	args := m.Called(ctx, clinicID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, clinicID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *finance.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

// MockClinicRepository is a mock implementation of identity.ClinicRepository
type MockClinicRepository struct {
	mock.Mock
}

func (m *MockClinicRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Clinic), args.Error(1)
}

func (m *MockClinicRepository) FindBySlug(ctx context.Context, slug string) (*identity.Clinic, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Clinic), args.Error(1)
}

func (m *MockClinicRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Clinic, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClinicRepository) Save(ctx context.Context, clinic *identity.Clinic) error {
	args := m.Called(ctx, clinic)
	return args.Error(0)
}

func staffCtx(clinicID uuid.UUID) context.Context {
	return isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID:   uuid.New(),
		Role:     isolation.RoleStaff,
		ClinicID: &clinicID,
	})
}

func newTransactionService(transactions *MockTransactionRepository, clinics *MockClinicRepository) *TransactionService {
	return NewTransactionService(transactions, clinics, guard.New(isolation.NewRegistry()))
}

func testClinic(t *testing.T, balance decimal.Decimal) *identity.Clinic {
	t.Helper()
	clinic, err := identity.NewClinic("Sorriso Odonto", "sorriso-odonto", "12.345.678/0001-90", "contact@sorriso.example")
	require.NoError(t, err)
	clinic.Balance = balance
	return clinic
}

func TestCreateTransactionSnapshotsClinicBalance(t *testing.T) {
	transactions := new(MockTransactionRepository)
	clinics := new(MockClinicRepository)
	svc := newTransactionService(transactions, clinics)

	clinic := testClinic(t, decimal.NewFromInt(1000))
	clinics.On("FindByID", mock.Anything, clinic.ID).Return(clinic, nil)
	transactions.On("CountByYear", mock.Anything, mock.AnythingOfType("int")).Return(int64(41), nil)
	transactions.On("Save", mock.Anything, mock.AnythingOfType("*finance.Transaction")).Return(nil)

	resp, err := svc.Create(staffCtx(clinic.ID), CreateTransactionRequest{
		Type:        "debit",
		Category:    "order",
		Amount:      decimal.NewFromInt(250),
		Description: "Order payment",
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("TRX-%04d-%08d", svc.now().Year(), 42), resp.TransactionNumber)
	assert.Equal(t, clinic.ID, resp.ClinicID)
	assert.True(t, resp.BalanceBefore.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.BalanceAfter.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, "pending", resp.Status)
	// the clinic balance does not move until the transaction completes
	assert.True(t, clinic.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestCreateTransactionForgedClinicIsOverwritten(t *testing.T) {
	transactions := new(MockTransactionRepository)
	clinics := new(MockClinicRepository)
	svc := newTransactionService(transactions, clinics)

	clinic := testClinic(t, decimal.NewFromInt(100))
	foreign := uuid.New()
	clinics.On("FindByID", mock.Anything, clinic.ID).Return(clinic, nil)
	transactions.On("CountByYear", mock.Anything, mock.AnythingOfType("int")).Return(int64(0), nil)
	transactions.On("Save", mock.Anything, mock.AnythingOfType("*finance.Transaction")).Return(nil)

	resp, err := svc.Create(staffCtx(clinic.ID), CreateTransactionRequest{
		Type:        "credit",
		Category:    "payment",
		Amount:      decimal.NewFromInt(50),
		Description: "Top up",
		ClinicID:    &foreign,
	})
	require.NoError(t, err)

	assert.Equal(t, clinic.ID, resp.ClinicID)
	clinics.AssertNotCalled(t, "FindByID", mock.Anything, foreign)
}

func TestCompleteTransactionMovesClinicBalance(t *testing.T) {
	transactions := new(MockTransactionRepository)
	clinics := new(MockClinicRepository)
	svc := newTransactionService(transactions, clinics)

	clinic := testClinic(t, decimal.NewFromInt(500))
	tx, err := finance.NewTransaction(clinic.ID, "TRX-2026-00000001", finance.TransactionTypeDebit,
		finance.TransactionCategoryFee, decimal.NewFromInt(120), clinic.Balance, "Platform fee")
	require.NoError(t, err)

	transactions.On("FindByIDForClinic", mock.Anything, clinic.ID, tx.ID).Return(tx, nil)
	transactions.On("Save", mock.Anything, tx).Return(nil)
	clinics.On("FindByID", mock.Anything, clinic.ID).Return(clinic, nil)
	clinics.On("Save", mock.Anything, clinic).Return(nil)

	resp, err := svc.Complete(staffCtx(clinic.ID), tx.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, "completed", resp.Status)
	assert.True(t, clinic.Balance.Equal(decimal.NewFromInt(380)))

	// completing twice is rejected and the balance stays put
	_, err = svc.Complete(staffCtx(clinic.ID), tx.ID, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.True(t, clinic.Balance.Equal(decimal.NewFromInt(380)))
}

func TestGetTransactionFromAnotherClinicIsNotFound(t *testing.T) {
	transactions := new(MockTransactionRepository)
	clinics := new(MockClinicRepository)
	svc := newTransactionService(transactions, clinics)

	callerClinic := uuid.New()
	id := uuid.New()
	transactions.On("FindByIDForClinic", mock.Anything, callerClinic, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(staffCtx(callerClinic), id, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateTransactionRequiresClinic(t *testing.T) {
	transactions := new(MockTransactionRepository)
	clinics := new(MockClinicRepository)
	svc := newTransactionService(transactions, clinics)

	ctx := isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID: uuid.New(),
		Role:   isolation.RoleStaff,
	})
	_, err := svc.Create(ctx, CreateTransactionRequest{
		Type:        "credit",
		Category:    "payment",
		Amount:      decimal.NewFromInt(10),
		Description: "Orphaned",
	})
	assert.ErrorIs(t, err, shared.ErrClinicUnresolved)
	transactions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
