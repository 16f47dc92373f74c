package domain

import (
	"testing"
	"time"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func twoItems() []OrderItem {
	return []OrderItem{
		{DishID: models.GenerateUUID(), Quantity: 2, UnitPrice: models.NewMoney(1000, "USD")},
		{DishID: models.GenerateUUID(), Quantity: 1, UnitPrice: models.NewMoney(500, "USD")},
	}
}

func TestPlaceOrder(t *testing.T) {
	restaurantID := models.GenerateUUID()
	userID := models.GenerateUUID()

	t.Run("computes the total from captured unit prices", func(t *testing.T) {
		order, err := PlaceOrder(restaurantID, userID, twoItems())
		assert.NoError(t, err)
		assert.Equal(t, int64(2500), order.TotalPrice.Amount)
		assert.Equal(t, "USD", order.TotalPrice.Currency)
		assert.Equal(t, OrderStatusPlaced, order.Status)
		assert.Nil(t, order.DeliveredAt)

		evts := order.Events()
		assert.Len(t, evts, 1)
		assert.Equal(t, events.OrderPlacedEvent, evts[0].EventType)
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		_, err := PlaceOrder(restaurantID, userID, nil)
		assert.ErrorIs(t, err, ErrEmptyOrder)
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		items := twoItems()
		items[0].Quantity = 0
		_, err := PlaceOrder(restaurantID, userID, items)
		assert.Error(t, err)
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		items := twoItems()
		items[1].UnitPrice.Currency = "EUR"
		_, err := PlaceOrder(restaurantID, userID, items)
		assert.Error(t, err)
	})
}

func TestOrderTransitions(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		order, err := PlaceOrder(models.GenerateUUID(), models.GenerateUUID(), twoItems())
		assert.NoError(t, err)
		order.ClearEvents()
		return order
	}

	t.Run("placed to payed to delivering", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.MarkPayed())
		assert.Equal(t, OrderStatusPayed, order.Status)
		assert.NoError(t, order.StartDelivering())
		assert.Equal(t, OrderStatusDelivering, order.Status)
	})

	t.Run("payed is only reachable from placed", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.MarkPayed())
		assert.ErrorIs(t, order.MarkPayed(), ErrIllegalTransition)
	})

	t.Run("delivering is only reachable from payed", func(t *testing.T) {
		order := newOrder(t)
		assert.ErrorIs(t, order.StartDelivering(), ErrIllegalTransition)
	})

	t.Run("cancel compensates any non-terminal state", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.Cancel("payment declined"))
		assert.Equal(t, OrderStatusCanceled, order.Status)
	})

	t.Run("complete delivery from delivering sets deliveredAt", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.MarkPayed())
		assert.NoError(t, order.StartDelivering())

		at := time.Now()
		assert.NoError(t, order.CompleteDelivery(at))
		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.NotNil(t, order.DeliveredAt)
		assert.Equal(t, at, *order.DeliveredAt)
	})

	t.Run("complete delivery tolerates the event racing the delivering write", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.MarkPayed())

		// completion event arrives while the order is still PAYED
		assert.NoError(t, order.CompleteDelivery(time.Now()))
		assert.Equal(t, OrderStatusDelivered, order.Status)
	})

	t.Run("complete delivery from placed is illegal", func(t *testing.T) {
		order := newOrder(t)
		assert.ErrorIs(t, order.CompleteDelivery(time.Now()), ErrIllegalTransition)
	})

	t.Run("failed delivery cancels without deliveredAt", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.MarkPayed())
		assert.NoError(t, order.StartDelivering())

		assert.NoError(t, order.FailDelivery("courier gave up"))
		assert.Equal(t, OrderStatusCanceled, order.Status)
		assert.Nil(t, order.DeliveredAt)
	})

	t.Run("terminal states absorb every further event", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.MarkPayed())
		assert.NoError(t, order.StartDelivering())
		assert.NoError(t, order.CompleteDelivery(time.Now()))
		order.ClearEvents()

		firstDeliveredAt := *order.DeliveredAt
		version := order.Version.Value

		assert.NoError(t, order.CompleteDelivery(time.Now().Add(time.Hour)))
		assert.NoError(t, order.FailDelivery("late event"))
		assert.NoError(t, order.Cancel("late compensation"))

		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.Equal(t, firstDeliveredAt, *order.DeliveredAt)
		assert.Equal(t, version, order.Version.Value)
		assert.Empty(t, order.Events())
	})

	t.Run("force status bypasses every guard", func(t *testing.T) {
		order := newOrder(t)
		assert.NoError(t, order.ForceStatus(OrderStatusDelivered))
		assert.Equal(t, OrderStatusDelivered, order.Status)

		// even backwards, by design of the administrative override
		assert.NoError(t, order.ForceStatus(OrderStatusPlaced))
		assert.Equal(t, OrderStatusPlaced, order.Status)

		assert.ErrorIs(t, order.ForceStatus("SHIPPED"), ErrInvalidStatus)
	})
}
