package finance

import (
	"context"
	"testing"
	"time"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPayableRepository is a mock implementation of finance.AccountPayableRepository
type MockPayableRepository struct {
	mock.Mock
}

func (m *MockPayableRepository) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, clinicID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, clinicID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepository) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, clinicID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayableRepository) Save(ctx context.Context, payable *finance.AccountPayable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockPayableRepository) FindOverdueForClinic(ctx context.Context, clinicID uuid.UUID, asOf time.Time) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, clinicID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

// MockReceivableRepository is a mock implementation of finance.AccountReceivableRepository
type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, clinicID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, clinicID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepository) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, clinicID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReceivableRepository) Save(ctx context.Context, receivable *finance.AccountReceivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) FindOverdueForClinic(ctx context.Context, clinicID uuid.UUID, asOf time.Time) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, clinicID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func newPayableService(payables *MockPayableRepository) *PayableService {
	return NewPayableService(payables, guard.New(isolation.NewRegistry()))
}

func newReceivableService(receivables *MockReceivableRepository) *ReceivableService {
	return NewReceivableService(receivables, guard.New(isolation.NewRegistry()))
}

func TestCreatePayableForcesCallerClinic(t *testing.T) {
	payables := new(MockPayableRepository)
	svc := newPayableService(payables)

	payables.On("Save", mock.Anything, mock.AnythingOfType("*finance.AccountPayable")).Return(nil)

	clinicID := uuid.New()
	foreign := uuid.New()
	resp, err := svc.Create(staffCtx(clinicID), CreatePayableRequest{
		CreditorName: "Imobiliária Central",
		Description:  "Office rent for September",
		Category:     "rent",
		Amount:       decimal.NewFromInt(3500),
		DueDate:      time.Now().AddDate(0, 0, 10),
		ClinicID:     &foreign,
	})
	require.NoError(t, err)

	assert.Equal(t, clinicID, resp.ClinicID)
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, resp.AmountRemaining.Equal(decimal.NewFromInt(3500)))
}

func TestRegisterPaymentSettlesWhenCovered(t *testing.T) {
	payables := new(MockPayableRepository)
	svc := newPayableService(payables)

	clinicID := uuid.New()
	payable, err := finance.NewAccountPayable(clinicID, "Dental Supply Co", "Order restock",
		finance.PayableCategorySupplier, decimal.NewFromInt(900), time.Now().AddDate(0, 0, 30))
	require.NoError(t, err)

	payables.On("FindByIDForClinic", mock.Anything, clinicID, payable.ID).Return(payable, nil)
	payables.On("Save", mock.Anything, payable).Return(nil)

	resp, err := svc.RegisterPayment(staffCtx(clinicID), payable.ID, nil, RegisterPaymentRequest{
		Amount: decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, resp.AmountRemaining.Equal(decimal.NewFromInt(500)))

	resp, err = svc.RegisterPayment(staffCtx(clinicID), payable.ID, nil, RegisterPaymentRequest{
		Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "settled", resp.Status)
	require.NotNil(t, resp.PaymentDate)
}

func TestRegisterPaymentRejectsOverpayment(t *testing.T) {
	payables := new(MockPayableRepository)
	svc := newPayableService(payables)

	clinicID := uuid.New()
	payable, err := finance.NewAccountPayable(clinicID, "Energia SA", "Electricity bill",
		finance.PayableCategoryUtilities, decimal.NewFromInt(200), time.Now().AddDate(0, 0, 5))
	require.NoError(t, err)

	payables.On("FindByIDForClinic", mock.Anything, clinicID, payable.ID).Return(payable, nil)

	_, err = svc.RegisterPayment(staffCtx(clinicID), payable.ID, nil, RegisterPaymentRequest{
		Amount: decimal.NewFromInt(300),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OVERPAYMENT", domainErr.Code)
	payables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListOverduePayablesUsesCallerClinic(t *testing.T) {
	payables := new(MockPayableRepository)
	svc := newPayableService(payables)

	clinicID := uuid.New()
	overdue, err := finance.NewAccountPayable(clinicID, "Dental Supply Co", "Old order",
		finance.PayableCategorySupplier, decimal.NewFromInt(150), time.Now().AddDate(0, 0, -10))
	require.NoError(t, err)
	payables.On("FindOverdueForClinic", mock.Anything, clinicID, mock.AnythingOfType("time.Time")).
		Return([]finance.AccountPayable{*overdue}, nil)

	items, err := svc.ListOverdue(staffCtx(clinicID), nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, clinicID, items[0].ClinicID)
}

func TestAdminListOverdueSpansClinics(t *testing.T) {
	payables := new(MockPayableRepository)
	svc := newPayableService(payables)

	adminCtx := isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID: uuid.New(),
		Role:   isolation.RoleAdmin,
	})
	payables.On("FindOverdueForClinic", mock.Anything, shared.AllClinics, mock.AnythingOfType("time.Time")).
		Return([]finance.AccountPayable{}, nil)
	items, err := svc.ListOverdue(adminCtx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	clinicID := uuid.New()
	payables.On("FindOverdueForClinic", mock.Anything, clinicID, mock.AnythingOfType("time.Time")).
		Return([]finance.AccountPayable{}, nil)
	items, err = svc.ListOverdue(adminCtx, &clinicID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRegisterReceiptSettlesReceivable(t *testing.T) {
	receivables := new(MockReceivableRepository)
	svc := newReceivableService(receivables)

	clinicID := uuid.New()
	receivable, err := finance.NewAccountReceivable(clinicID, "Maria Souza", "Root canal treatment",
		decimal.NewFromInt(600), time.Now().AddDate(0, 0, 15))
	require.NoError(t, err)

	receivables.On("FindByIDForClinic", mock.Anything, clinicID, receivable.ID).Return(receivable, nil)
	receivables.On("Save", mock.Anything, receivable).Return(nil)

	resp, err := svc.RegisterReceipt(staffCtx(clinicID), receivable.ID, nil, RegisterPaymentRequest{
		Amount: decimal.NewFromInt(600),
	})
	require.NoError(t, err)
	assert.Equal(t, "settled", resp.Status)
	require.NotNil(t, resp.ReceivedDate)
	assert.True(t, resp.AmountRemaining.IsZero())
}

func TestGetReceivableFromAnotherClinicIsNotFound(t *testing.T) {
	receivables := new(MockReceivableRepository)
	svc := newReceivableService(receivables)

	callerClinic := uuid.New()
	id := uuid.New()
	receivables.On("FindByIDForClinic", mock.Anything, callerClinic, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(staffCtx(callerClinic), id, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
