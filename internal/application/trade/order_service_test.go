package trade

import (
	"context"
	"fmt"
	"testing"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/partner"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/clinisupply/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, clinicID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, clinicID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, clinicID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func staffCtx(clinicID uuid.UUID) context.Context {
	return isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID:   uuid.New(),
		Role:     isolation.RoleStaff,
		ClinicID: &clinicID,
	})
}

func newOrderService(orders *MockOrderRepository, suppliers *MockSupplierRepository) *OrderService {
	return NewOrderService(orders, suppliers, guard.New(isolation.NewRegistry()))
}

func activeSupplier(t *testing.T) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier("Dental Supply Co", "dental-supply", "12.345.678/0001-90", "sales@dental.example")
	require.NoError(t, err)
	return supplier
}

func TestCreateOrderNumbersSequentiallyByYear(t *testing.T) {
	orders := new(MockOrderRepository)
	suppliers := new(MockSupplierRepository)
	svc := newOrderService(orders, suppliers)

	supplier := activeSupplier(t)
	suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	orders.On("CountByYear", mock.Anything, mock.AnythingOfType("int")).Return(int64(41), nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)

	clinicID := uuid.New()
	resp, err := svc.Create(staffCtx(clinicID), CreateOrderRequest{
		SupplierID: supplier.ID,
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.NewFromInt(30)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%04d-000042", svc.now().Year()), resp.OrderNumber)
	assert.Equal(t, clinicID, resp.ClinicID)
	assert.Equal(t, string(trade.OrderStatusDraft), resp.Status)
	assert.True(t, decimal.NewFromInt(60).Equal(resp.Total))
}

func TestCreateOrderForcesCallerClinic(t *testing.T) {
	orders := new(MockOrderRepository)
	suppliers := new(MockSupplierRepository)
	svc := newOrderService(orders, suppliers)

	supplier := activeSupplier(t)
	suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	orders.On("CountByYear", mock.Anything, mock.AnythingOfType("int")).Return(int64(0), nil)
	orders.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)

	clinicID := uuid.New()
	forged := uuid.New()
	resp, err := svc.Create(staffCtx(clinicID), CreateOrderRequest{
		SupplierID: supplier.ID,
		ClinicID:   &forged,
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, clinicID, resp.ClinicID)
}

func TestCreateOrderInactiveSupplier(t *testing.T) {
	orders := new(MockOrderRepository)
	suppliers := new(MockSupplierRepository)
	svc := newOrderService(orders, suppliers)

	supplier := activeSupplier(t)
	supplier.Status = partner.SupplierStatusInactive
	suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)

	_, err := svc.Create(staffCtx(uuid.New()), CreateOrderRequest{
		SupplierID: supplier.ID,
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, ErrSupplierInactive)
	orders.AssertNotCalled(t, "Save")
}

func TestCreateOrderBelowSupplierMinimum(t *testing.T) {
	orders := new(MockOrderRepository)
	suppliers := new(MockSupplierRepository)
	svc := newOrderService(orders, suppliers)

	supplier := activeSupplier(t)
	supplier.MinOrderValue = decimal.NewFromInt(100)
	suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	orders.On("CountByYear", mock.Anything, mock.AnythingOfType("int")).Return(int64(0), nil)

	_, err := svc.Create(staffCtx(uuid.New()), CreateOrderRequest{
		SupplierID: supplier.ID,
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		},
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "BELOW_MIN_ORDER", derr.Code)
}

func TestSubmitOrderLifecycle(t *testing.T) {
	orders := new(MockOrderRepository)
	suppliers := new(MockSupplierRepository)
	svc := newOrderService(orders, suppliers)

	clinicID := uuid.New()
	order, err := trade.NewOrder(clinicID, uuid.New(), "ORD-2026-000001")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), 1, decimal.NewFromInt(10), decimal.Zero))

	orders.On("FindByIDForClinic", mock.Anything, clinicID, order.ID).Return(order, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	resp, err := svc.Submit(staffCtx(clinicID), order.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(trade.OrderStatusPending), resp.Status)

	// Submitting twice is an invalid transition.
	_, err = svc.Submit(staffCtx(clinicID), order.ID, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestGetOrderCrossClinicIsNotFound(t *testing.T) {
	orders := new(MockOrderRepository)
	suppliers := new(MockSupplierRepository)
	svc := newOrderService(orders, suppliers)

	clinicB := uuid.New()
	orderID := uuid.New()
	orders.On("FindByIDForClinic", mock.Anything, clinicB, orderID).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(staffCtx(clinicB), orderID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
