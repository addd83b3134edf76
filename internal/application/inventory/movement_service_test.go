package inventory

import (
	"context"
	"testing"

	"github.com/clinisupply/backend/internal/application/guard"
	"github.com/clinisupply/backend/internal/domain/isolation"
	"github.com/clinisupply/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMovementService(items *fakeItemRepository, movements *fakeMovementRepository) *MovementService {
	return NewMovementService(movements, NewNoOpTransactionScope(items, movements), guard.New(isolation.NewRegistry()))
}

func TestRecordMovementAdjustsItem(t *testing.T) {
	items := newFakeItemRepository()
	movements := newFakeMovementRepository()
	svc := newMovementService(items, movements)

	clinicID := uuid.New()
	item := seedItem(t, items, clinicID, 10)

	resp, err := svc.Record(staffCtx(clinicID), RecordMovementRequest{
		ItemID:   item.ID,
		Type:     "out",
		Quantity: decimal.NewFromInt(4),
		Reason:   "sale",
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(resp.QuantityBefore))
	assert.True(t, decimal.NewFromInt(6).Equal(resp.QuantityAfter))
	assert.Equal(t, clinicID, resp.ClinicID)
	assert.NotNil(t, resp.UserID)

	stored, err := items.FindByIDForClinic(context.Background(), clinicID, item.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6).Equal(stored.Quantity))
}

func TestRecordMovementInsufficientStock(t *testing.T) {
	items := newFakeItemRepository()
	movements := newFakeMovementRepository()
	svc := newMovementService(items, movements)

	clinicID := uuid.New()
	item := seedItem(t, items, clinicID, 3)

	_, err := svc.Record(staffCtx(clinicID), RecordMovementRequest{
		ItemID:   item.ID,
		Type:     "out",
		Quantity: decimal.NewFromInt(5),
		Reason:   "sale",
	})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INSUFFICIENT_STOCK", derr.Code)
	assert.Empty(t, movements.movements)

	// The item is untouched.
	stored, err := items.FindByIDForClinic(context.Background(), clinicID, item.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3).Equal(stored.Quantity))
}

func TestRecordMovementCrossClinicItemIsNotFound(t *testing.T) {
	items := newFakeItemRepository()
	movements := newFakeMovementRepository()
	svc := newMovementService(items, movements)

	clinicA := uuid.New()
	clinicB := uuid.New()
	item := seedItem(t, items, clinicA, 10)

	_, err := svc.Record(staffCtx(clinicB), RecordMovementRequest{
		ItemID:   item.ID,
		Type:     "in",
		Quantity: decimal.NewFromInt(1),
		Reason:   "purchase",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, movements.movements)
}

func TestMovementListScopedToClinic(t *testing.T) {
	items := newFakeItemRepository()
	movements := newFakeMovementRepository()
	svc := newMovementService(items, movements)

	clinicA := uuid.New()
	clinicB := uuid.New()
	itemA := seedItem(t, items, clinicA, 10)
	itemB := seedItem(t, items, clinicB, 10)

	for _, rec := range []struct {
		ctx    context.Context
		itemID uuid.UUID
	}{
		{staffCtx(clinicA), itemA.ID},
		{staffCtx(clinicB), itemB.ID},
	} {
		_, err := svc.Record(rec.ctx, RecordMovementRequest{
			ItemID:   rec.itemID,
			Type:     "in",
			Quantity: decimal.NewFromInt(2),
			Reason:   "purchase",
		})
		require.NoError(t, err)
	}

	page, err := svc.List(staffCtx(clinicA), MovementListFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, itemA.ID, page.Items[0].ItemID)
}

func TestMovementGetCrossClinicIsNotFound(t *testing.T) {
	items := newFakeItemRepository()
	movements := newFakeMovementRepository()
	svc := newMovementService(items, movements)

	clinicA := uuid.New()
	item := seedItem(t, items, clinicA, 10)

	resp, err := svc.Record(staffCtx(clinicA), RecordMovementRequest{
		ItemID:   item.ID,
		Type:     "in",
		Quantity: decimal.NewFromInt(2),
		Reason:   "purchase",
	})
	require.NoError(t, err)

	_, err = svc.GetByID(staffCtx(uuid.New()), resp.ID, nil)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Admin reads it by naming the clinic.
	got, err := svc.GetByID(adminCtx(), resp.ID, &clinicA)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}
