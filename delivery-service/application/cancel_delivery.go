package application

import (
	"context"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CancelDeliveryCommand aborts an in-flight delivery
type CancelDeliveryCommand struct {
	OrderID string `json:"order_id"`
}

// CancelDelivery aborts the courier task for an order. The simulator task
// fails the delivery and publishes the outcome event.
type CancelDelivery struct {
	deliveryRepository domain.DeliveryRepository
	simulator          *Simulator
}

// NewCancelDelivery creates a new CancelDelivery use case
func NewCancelDelivery(deliveryRepository domain.DeliveryRepository, simulator *Simulator) *CancelDelivery {
	return &CancelDelivery{
		deliveryRepository: deliveryRepository,
		simulator:          simulator,
	}
}

// Execute cancels the delivery
func (uc *CancelDelivery) Execute(ctx context.Context, cmd *CancelDeliveryCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "cancel_delivery",
		trace.WithAttributes(attribute.String("order_id", cmd.OrderID)),
	)
	defer span.End()

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return errors.Wrap(err, "invalid order ID")
	}

	delivery, err := uc.deliveryRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to find delivery")
	}
	if delivery == nil {
		return domain.ErrDeliveryNotFound
	}
	if delivery.Status.IsTerminal() {
		return errors.Wrapf(domain.ErrDeliveryFinished, "delivery %s is %s", delivery.ID, delivery.Status)
	}

	if !uc.simulator.Cancel(orderID) {
		return errors.Errorf("no courier task tracking order %s", orderID)
	}

	telemetry.RecordCounter(ctx, "deliveries_canceled_total", "Deliveries aborted mid flight", 1)
	return nil
}
