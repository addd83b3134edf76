package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/finance"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/partner"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceRepository is a mock implementation of finance.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*finance.Invoice, error) {
	args := m.Called(ctx, clinicID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]finance.Invoice, error) {
	args := m.Called(ctx, clinicID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, clinicID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *finance.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) CountByYear(ctx context.Context, year int) (int64, error) {
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

func newInvoiceService(invoices *MockInvoiceRepository, suppliers *MockSupplierRepository) *InvoiceService {
	return NewInvoiceService(invoices, suppliers, guard.New(isolation.NewRegistry()))
}

func TestCreateInvoiceNumbersSequentiallyByYear(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	suppliers := new(MockSupplierRepository)
	svc := newInvoiceService(invoices, suppliers)

	supplier, err := partner.NewSupplier("Dental Supply Co", "dental-supply", "98.765.432/0001-10", "sales@dental.example")
	require.NoError(t, err)
	suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	invoices.On("CountByYear", mock.Anything, mock.AnythingOfType("int")).Return(int64(6), nil)
	invoices.On("Save", mock.Anything, mock.AnythingOfType("*finance.Invoice")).Return(nil)

	clinicID := uuid.New()
	resp, err := svc.Create(staffCtx(clinicID), CreateInvoiceRequest{
		SupplierID: supplier.ID,
		Type:       "nfe",
		Subtotal:   decimal.NewFromInt(300),
		Tax:        decimal.NewFromInt(45),
		IssueDate:  time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("INV-%04d-%06d", svc.now().Year(), 7), resp.InvoiceNumber)
	assert.Equal(t, clinicID, resp.ClinicID)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(345)))
	assert.Equal(t, "issued", resp.Status)
}

func TestCreateInvoiceUnknownSupplierIsRejected(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	suppliers := new(MockSupplierRepository)
	svc := newInvoiceService(invoices, suppliers)

	supplierID := uuid.New()
	suppliers.On("FindByID", mock.Anything, supplierID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(staffCtx(uuid.New()), CreateInvoiceRequest{
		SupplierID: supplierID,
		Type:       "receipt",
		Subtotal:   decimal.NewFromInt(100),
		IssueDate:  time.Now(),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SUPPLIER_NOT_FOUND", domainErr.Code)
	invoices.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestMarkInvoicePaid(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	suppliers := new(MockSupplierRepository)
	svc := newInvoiceService(invoices, suppliers)

	clinicID := uuid.New()
	invoice, err := finance.NewInvoice(clinicID, uuid.New(), "INV-2026-000001",
		finance.InvoiceTypeNFSe, decimal.NewFromInt(200), decimal.Zero, time.Now())
	require.NoError(t, err)

	invoices.On("FindByIDForClinic", mock.Anything, clinicID, invoice.ID).Return(invoice, nil)
	invoices.On("Save", mock.Anything, invoice).Return(nil)

	resp, err := svc.MarkPaid(staffCtx(clinicID), invoice.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, resp.PaidAt)
}

func TestGetInvoiceFromAnotherClinicIsNotFound(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	suppliers := new(MockSupplierRepository)
	svc := newInvoiceService(invoices, suppliers)

	callerClinic := uuid.New()
	id := uuid.New()
	invoices.On("FindByIDForClinic", mock.Anything, callerClinic, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(staffCtx(callerClinic), id, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
