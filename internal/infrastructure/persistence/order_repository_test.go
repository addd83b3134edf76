package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/clinisupply/backend/internal/domain/shared"
)

func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func TestGormOrderRepository_FindByIDForClinic(t *testing.T) {
	t.Run("loads order with line items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		clinicID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE clinic_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clinicID, orderID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_id", "order_number", "supplier_id", "status"}).
				AddRow(orderID, clinicID, "ORD-2026-000001", uuid.New(), "draft"))

		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity"}))

		order, err := repo.FindByIDForClinic(context.Background(), clinicID, orderID)
		require.NoError(t, err)
		assert.Equal(t, "ORD-2026-000001", order.OrderNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("order owned by another clinic comes back not found", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		clinicID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE clinic_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(clinicID, orderID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		order, err := repo.FindByIDForClinic(context.Background(), clinicID, orderID)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_CountByYear(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE order_number LIKE \$1`).
		WithArgs("ORD-2026-%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	count, err := repo.CountByYear(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(41), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
