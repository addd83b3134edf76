package catalog

import (
	"context"
	"testing"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/catalog"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

func newProductService(products *MockProductRepository) *ProductService {
	return NewProductService(products, guard.New(isolation.NewRegistry()))
}

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), uuid.New(), "Nitrile Gloves", "nitrile-gloves", "GLV-001",
		decimal.NewFromInt(30), catalog.ProductUnitBox)
	require.NoError(t, err)
	return product
}

func TestProductListRequiresAuthentication(t *testing.T) {
	svc := newProductService(new(MockProductRepository))

	_, err := svc.List(context.Background(), ProductListFilter{})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestProductListVisibleToAnyClinicUser(t *testing.T) {
	products := new(MockProductRepository)
	svc := newProductService(products)

	product := newTestProduct(t)
	products.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*product}, nil)
	products.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	// Users without a clinic binding can still read shared catalog data.
	ctx := isolation.WithAccessContext(context.Background(), isolation.AccessContext{
		UserID: uuid.New(),
		Role:   isolation.RoleSupplier,
	})
	page, err := svc.List(ctx, ProductListFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, product.SKU, page.Items[0].SKU)
}

func TestProductCreateDuplicateSKU(t *testing.T) {
	products := new(MockProductRepository)
	svc := newProductService(products)

	existing := newTestProduct(t)
	products.On("FindBySKU", mock.Anything, "GLV-001").Return(existing, nil)

	_, err := svc.Create(staffCtx(uuid.New()), CreateProductRequest{
		SupplierID: uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Other Gloves",
		Slug:       "other-gloves",
		SKU:        "GLV-001",
		BasePrice:  decimal.NewFromInt(25),
		Unit:       "box",
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "SKU_TAKEN", derr.Code)
	products.AssertNotCalled(t, "Save")
}

func TestProductCreateSuccess(t *testing.T) {
	products := new(MockProductRepository)
	svc := newProductService(products)

	products.On("FindBySKU", mock.Anything, "SYR-010").Return(nil, shared.ErrNotFound)
	products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := svc.Create(staffCtx(uuid.New()), CreateProductRequest{
		SupplierID: uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Syringes 10ml",
		Slug:       "syringes-10ml",
		SKU:        "syr-010",
		BasePrice:  decimal.NewFromInt(12),
		Unit:       "box",
	})
	require.NoError(t, err)
	assert.Equal(t, "SYR-010", resp.SKU)
	assert.True(t, resp.Available)
}

func TestProductUpdateTogglesAvailability(t *testing.T) {
	products := new(MockProductRepository)
	svc := newProductService(products)

	product := newTestProduct(t)
	products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	products.On("Save", mock.Anything, product).Return(nil)

	available := false
	resp, err := svc.Update(staffCtx(uuid.New()), product.ID, UpdateProductRequest{Available: &available})
	require.NoError(t, err)
	assert.False(t, resp.Available)
}
