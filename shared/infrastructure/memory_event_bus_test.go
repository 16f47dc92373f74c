package infrastructure

import (
	"context"
	"testing"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	id   string
	seen []*events.Event
	err  error
}

func (h *recordingHandler) HandlerID() string { return h.id }

func (h *recordingHandler) Handle(ctx context.Context, event *events.Event) error {
	h.seen = append(h.seen, event)
	return h.err
}

func TestMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to matching subscriptions only", func(t *testing.T) {
		bus := NewMemoryEventBus()
		deliveryHandler := &recordingHandler{id: "delivery"}
		orderHandler := &recordingHandler{id: "order"}

		assert.NoError(t, bus.Subscribe(ctx, "delivery.#", deliveryHandler))
		assert.NoError(t, bus.Subscribe(ctx, "order.#", orderHandler))

		evt := events.NewEvent(models.GenerateUUID(), events.DeliveryStatusUpdatedEvent, nil)
		assert.NoError(t, bus.Publish(ctx, evt))

		assert.Len(t, deliveryHandler.seen, 1)
		assert.Empty(t, orderHandler.seen)
	})

	t.Run("empty pattern receives everything", func(t *testing.T) {
		bus := NewMemoryEventBus()
		handler := &recordingHandler{id: "all"}
		assert.NoError(t, bus.Subscribe(ctx, "", handler))

		assert.NoError(t, bus.Publish(ctx,
			events.NewEvent(models.GenerateUUID(), events.OrderPlacedEvent, nil),
			events.NewEvent(models.GenerateUUID(), events.DeliveryInitiatedEvent, nil),
		))

		assert.Len(t, handler.seen, 2)
	})

	t.Run("handler errors are swallowed", func(t *testing.T) {
		bus := NewMemoryEventBus()
		handler := &recordingHandler{id: "failing", err: errors.New("boom")}
		assert.NoError(t, bus.Subscribe(ctx, "#", handler))

		assert.NoError(t, bus.Publish(ctx, events.NewEvent(models.GenerateUUID(), events.OrderPayedEvent, nil)))
		assert.Len(t, handler.seen, 1)
	})

	t.Run("closed bus drops events", func(t *testing.T) {
		bus := NewMemoryEventBus()
		handler := &recordingHandler{id: "late"}
		assert.NoError(t, bus.Subscribe(ctx, "#", handler))
		assert.NoError(t, bus.Close())

		assert.NoError(t, bus.Publish(ctx, events.NewEvent(models.GenerateUUID(), events.OrderPlacedEvent, nil)))
		assert.Empty(t, handler.seen)
	})
}
