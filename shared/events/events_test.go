package events

import (
	"encoding/json"
	"testing"

	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"exact match", "delivery.status.updated", "delivery.status.updated", true},
		{"single wildcard", "order.placed", "order.*", true},
		{"single wildcard no match", "order.placed", "delivery.*", false},
		{"hash matches everything", "order.status.overridden", "#", true},
		{"prefix hash", "delivery.status.updated", "#.updated", true},
		{"suffix hash", "delivery.status.updated", "delivery.#", true},
		{"contains hash", "order.canceled", "#cancel#", true},
		{"length mismatch", "order.placed", "order.placed.twice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.topic.Matches(tt.pattern))
		})
	}
}

func TestMetadata(t *testing.T) {
	t.Run("new events carry a writable metadata map", func(t *testing.T) {
		evt := NewEvent(models.GenerateUUID(), OrderPlacedEvent, nil)
		evt.Metadata.Set("correlation", "abc")

		v, ok := evt.Metadata.Get("correlation")
		assert.True(t, ok)
		assert.Equal(t, "abc", v)
		assert.True(t, evt.Metadata.Has("correlation"))
	})

	t.Run("clone is independent of the original", func(t *testing.T) {
		m := Metadata{"a": "1"}
		clone := m.Clone()
		clone.Set("a", "2")

		v, _ := m.Get("a")
		assert.Equal(t, "1", v)
	})
}

func TestEventUnmarshalPayload(t *testing.T) {
	type deliveryUpdate struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}

	orderID := models.GenerateUUID()

	t.Run("typed payload", func(t *testing.T) {
		evt := NewEvent(orderID, DeliveryStatusUpdatedEvent, deliveryUpdate{
			OrderID: orderID.String(),
			Status:  "DELIVERED",
		})

		var got deliveryUpdate
		assert.NoError(t, evt.UnmarshalPayload(&got))
		assert.Equal(t, orderID.String(), got.OrderID)
		assert.Equal(t, "DELIVERED", got.Status)
	})

	t.Run("raw json payload after wire round trip", func(t *testing.T) {
		evt := NewEvent(orderID, DeliveryStatusUpdatedEvent, deliveryUpdate{
			OrderID: orderID.String(),
			Status:  "FAILED",
		})
		raw, err := evt.MarshalPayload()
		assert.NoError(t, err)
		evt.Data = json.RawMessage(raw)

		var got deliveryUpdate
		assert.NoError(t, evt.UnmarshalPayload(&got))
		assert.Equal(t, "FAILED", got.Status)
	})

	t.Run("non pointer receiver", func(t *testing.T) {
		evt := NewEvent(orderID, DeliveryStatusUpdatedEvent, deliveryUpdate{})
		var got deliveryUpdate
		assert.ErrorIs(t, evt.UnmarshalPayload(got), ErrInvalidReceiver)
	})
}
