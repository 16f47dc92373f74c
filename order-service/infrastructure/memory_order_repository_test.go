package infrastructure

import (
	"context"
	"testing"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placedOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.PlaceOrder(models.GenerateUUID(), models.GenerateUUID(), []domain.OrderItem{
		{DishID: models.GenerateUUID(), Quantity: 2, UnitPrice: models.NewMoney(1000, "USD")},
	})
	require.NoError(t, err)
	return order
}

func TestMemoryOrderRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()

	order := placedOrder(t)
	require.NoError(t, repo.Save(ctx, order))
	order.ClearEvents()

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, domain.OrderStatusPlaced, found.Status)
	assert.Equal(t, int64(2000), found.TotalPrice.Amount)
	assert.Len(t, found.Items, 1)

	missing, err := repo.FindByID(ctx, models.GenerateUUID())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryOrderRepository_FindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()

	order := placedOrder(t)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	found.Status = domain.OrderStatusCanceled
	found.Items[0].Quantity = 99

	fresh, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPlaced, fresh.Status)
	assert.Equal(t, 2, fresh.Items[0].Quantity)
}

func TestMemoryOrderRepository_VersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()

	order := placedOrder(t)
	require.NoError(t, repo.Save(ctx, order))
	order.ClearEvents()

	// Two writers load the same version.
	first, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, first.MarkPayed())
	first.ClearEvents()
	require.NoError(t, repo.Save(ctx, first))

	require.NoError(t, second.MarkPayed())
	second.ClearEvents()
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}

func TestMemoryOrderRepository_UpdateUnknownOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()

	order := placedOrder(t)
	order.ClearEvents()
	require.NoError(t, order.MarkPayed())
	order.ClearEvents()

	err := repo.Save(ctx, order)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
