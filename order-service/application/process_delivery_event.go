package application

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// delivery statuses carried on delivery.status.updated events
const (
	deliveryStatusDelivered = "DELIVERED"
	deliveryStatusFailed    = "FAILED"
)

// conflictRetries bounds the re-read loop when a status write races another
// writer. The loop converges fast: after at most one concurrent transition
// the order is either terminal (absorbed) or writable.
const conflictRetries = 3

// DeliveryStatusPayload is the body of a delivery.status.updated event
type DeliveryStatusPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// ProcessDeliveryEvent applies delivery outcome events to orders. The channel
// is at least once: duplicates and replays land on a terminal order and are
// absorbed; events that arrive before the DELIVERING write are accepted off
// the PAYED status. Bad events are logged and dropped so a poison message
// never wedges the queue.
type ProcessDeliveryEvent struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
}

// NewProcessDeliveryEvent creates a new ProcessDeliveryEvent use case
func NewProcessDeliveryEvent(orderRepository domain.OrderRepository, eventPublisher events.Publisher) *ProcessDeliveryEvent {
	return &ProcessDeliveryEvent{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute consumes one delivery status event. A nil return acks the message;
// only infrastructure failures worth redelivery return an error.
func (uc *ProcessDeliveryEvent) Execute(ctx context.Context, event *events.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "process_delivery_event",
		trace.WithAttributes(attribute.String("event_id", event.ID.String())),
	)
	defer span.End()

	var payload DeliveryStatusPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		uc.drop(ctx, event, "malformed payload", err)
		return nil
	}

	orderID, err := models.NewID(payload.OrderID)
	if err != nil {
		uc.drop(ctx, event, "invalid order id", err)
		return nil
	}
	span.SetAttributes(
		attribute.String("order_id", payload.OrderID),
		attribute.String("delivery_status", payload.Status),
	)

	outcome, known := uc.transitionFor(payload.Status)
	if !known {
		uc.drop(ctx, event, "unknown delivery status", nil)
		return nil
	}

	for attempt := 0; attempt < conflictRetries; attempt++ {
		order, err := uc.orderRepository.FindByID(ctx, orderID)
		if err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "failed to find order")
		}
		if order == nil {
			uc.drop(ctx, event, "unknown order", nil)
			return nil
		}

		if order.Status.IsTerminal() {
			log.Debug().Str("order_id", orderID.String()).Str("status", string(order.Status)).
				Msg("delivery event absorbed on terminal order")
			return nil
		}

		if err := outcome(order, event.Timestamp); err != nil {
			uc.drop(ctx, event, "illegal transition", err)
			return nil
		}

		err = uc.orderRepository.Save(ctx, order)
		if err == nil {
			if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
				log.Warn().Err(err).Str("order_id", orderID.String()).
					Msg("failed to publish order events")
			}
			order.ClearEvents()

			telemetry.RecordCounter(ctx, "delivery_events_applied_total",
				"Delivery outcome events applied to orders", 1,
				attribute.String("status", payload.Status),
			)
			return nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			span.RecordError(err)
			return errors.Wrap(err, "failed to save order")
		}
		// Lost a race with another writer, re-read and retry.
	}

	return errors.Errorf("gave up applying delivery event %s after %d conflicts", event.ID, conflictRetries)
}

func (uc *ProcessDeliveryEvent) transitionFor(status string) (func(*domain.Order, time.Time) error, bool) {
	switch status {
	case deliveryStatusDelivered:
		return func(o *domain.Order, at time.Time) error { return o.CompleteDelivery(at) }, true
	case deliveryStatusFailed:
		return func(o *domain.Order, _ time.Time) error { return o.FailDelivery("delivery failed") }, true
	default:
		return nil, false
	}
}

// drop records an unprocessable event. Returning nil to the subscriber acks
// it; redelivering would just fail the same way.
func (uc *ProcessDeliveryEvent) drop(ctx context.Context, event *events.Event, reason string, err error) {
	log.Warn().Err(err).
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("reason", reason).
		Msg("dropping delivery event")
	telemetry.RecordCounter(ctx, "delivery_events_dropped_total",
		"Delivery events dropped as unprocessable", 1,
		attribute.String("reason", reason),
	)
}
