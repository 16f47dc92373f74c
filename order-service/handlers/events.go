package handlers

import (
	"context"

	"github.com/fooddelivery/order-system/order-service/application"
	"github.com/fooddelivery/order-system/shared/events"
)

// DeliveryEventHandlers routes delivery lifecycle events into the order saga
type DeliveryEventHandlers struct {
	processDeliveryEvent *application.ProcessDeliveryEvent
}

// NewDeliveryEventHandlers creates new delivery event handlers
func NewDeliveryEventHandlers(processDeliveryEvent *application.ProcessDeliveryEvent) *DeliveryEventHandlers {
	return &DeliveryEventHandlers{
		processDeliveryEvent: processDeliveryEvent,
	}
}

// Handle implements the events.EventHandler interface
func (h *DeliveryEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.EventType {
	case events.DeliveryStatusUpdatedEvent:
		return h.processDeliveryEvent.Execute(ctx, event)
	default:
		// Unknown event type, ignore
		return nil
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *DeliveryEventHandlers) HandlerID() string {
	return "order-service-event-handler"
}
