package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	clinicID := uuid.New()
	productID := uuid.New()

	t.Run("creates item owned by the clinic", func(t *testing.T) {
		item, err := NewItem(clinicID, productID, decimal.NewFromInt(50), decimal.NewFromFloat(12.5))
		require.NoError(t, err)
		assert.Equal(t, clinicID, item.ClinicID)
		assert.Equal(t, clinicID, item.OwnerClinic())
		assert.Equal(t, ItemStatusInStock, item.Status)
		assert.True(t, item.TotalValue.Equal(decimal.NewFromFloat(625.0)))
	})

	t.Run("zero quantity is out of stock", func(t *testing.T) {
		item, err := NewItem(clinicID, productID, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, ItemStatusOutOfStock, item.Status)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewItem(clinicID, productID, decimal.NewFromInt(-1), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewItem(clinicID, uuid.Nil, decimal.NewFromInt(1), decimal.Zero)
		assert.Error(t, err)
	})
}

func TestItem_AdjustQuantity(t *testing.T) {
	item, err := NewItem(uuid.New(), uuid.New(), decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, err)
	require.NoError(t, item.SetThresholds(decimal.NewFromInt(5), decimal.NewFromInt(100)))

	t.Run("recalculates value and status", func(t *testing.T) {
		require.NoError(t, item.AdjustQuantity(decimal.NewFromInt(-6)))
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(4)))
		assert.True(t, item.TotalValue.Equal(decimal.NewFromInt(8)))
		assert.Equal(t, ItemStatusLowStock, item.Status)
	})

	t.Run("rejects overdraw", func(t *testing.T) {
		err := item.AdjustQuantity(decimal.NewFromInt(-100))
		assert.Error(t, err)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("drains to out of stock", func(t *testing.T) {
		require.NoError(t, item.AdjustQuantity(decimal.NewFromInt(-4)))
		assert.Equal(t, ItemStatusOutOfStock, item.Status)
	})
}

func TestNewMovement(t *testing.T) {
	clinicID := uuid.New()

	t.Run("derives before and after quantities", func(t *testing.T) {
		item, err := NewItem(clinicID, uuid.New(), decimal.NewFromInt(20), decimal.NewFromInt(3))
		require.NoError(t, err)

		m, err := NewMovement(item, MovementTypeOut, decimal.NewFromInt(5), MovementReasonSale)
		require.NoError(t, err)

		assert.Equal(t, clinicID, m.ClinicID)
		assert.Equal(t, item.ID, m.ItemID)
		assert.True(t, m.QuantityBefore.Equal(decimal.NewFromInt(20)))
		assert.True(t, m.QuantityAfter.Equal(decimal.NewFromInt(15)))
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(15)))
	})

	t.Run("inbound movement increases stock", func(t *testing.T) {
		item, err := NewItem(clinicID, uuid.New(), decimal.NewFromInt(2), decimal.NewFromInt(1))
		require.NoError(t, err)

		m, err := NewMovement(item, MovementTypeIn, decimal.NewFromInt(8), MovementReasonPurchase)
		require.NoError(t, err)
		assert.True(t, m.QuantityAfter.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects overdraw without mutating the item", func(t *testing.T) {
		item, err := NewItem(clinicID, uuid.New(), decimal.NewFromInt(3), decimal.NewFromInt(1))
		require.NoError(t, err)

		_, err = NewMovement(item, MovementTypeOut, decimal.NewFromInt(10), MovementReasonSale)
		assert.Error(t, err)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(3)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item, err := NewItem(clinicID, uuid.New(), decimal.NewFromInt(3), decimal.NewFromInt(1))
		require.NoError(t, err)

		_, err = NewMovement(item, MovementTypeIn, decimal.Zero, MovementReasonPurchase)
		assert.Error(t, err)
	})
}
