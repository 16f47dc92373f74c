package application

import (
	"context"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InitiateDeliveryCommand represents the command to start delivering an order
type InitiateDeliveryCommand struct {
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	UserID       string `json:"user_id"`
}

// InitiateDeliveryResponse acknowledges the accepted delivery
type InitiateDeliveryResponse struct {
	DeliveryID string `json:"delivery_id"`
	Status     string `json:"status"`
}

// InitiateDelivery accepts a delivery request and hands the in-flight
// delivery to the simulator, which will publish the outcome later.
type InitiateDelivery struct {
	deliveryRepository domain.DeliveryRepository
	eventPublisher     events.Publisher
	simulator          *Simulator
}

// NewInitiateDelivery creates a new InitiateDelivery use case
func NewInitiateDelivery(
	deliveryRepository domain.DeliveryRepository,
	eventPublisher events.Publisher,
	simulator *Simulator,
) *InitiateDelivery {
	return &InitiateDelivery{
		deliveryRepository: deliveryRepository,
		eventPublisher:     eventPublisher,
		simulator:          simulator,
	}
}

// Execute starts the delivery. Initiating twice for the same order returns
// the existing delivery instead of dispatching a second courier.
func (uc *InitiateDelivery) Execute(ctx context.Context, cmd *InitiateDeliveryCommand) (*InitiateDeliveryResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "initiate_delivery",
		trace.WithAttributes(attribute.String("order_id", cmd.OrderID)),
	)
	defer span.End()

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}
	restaurantID, err := models.NewID(cmd.RestaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}
	userID, err := models.NewID(cmd.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	existing, err := uc.deliveryRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to check existing delivery")
	}
	if existing != nil {
		return &InitiateDeliveryResponse{
			DeliveryID: existing.ID.String(),
			Status:     string(existing.Status),
		}, nil
	}

	delivery := domain.InitiateDelivery(orderID, restaurantID, userID)
	if err := uc.deliveryRepository.Save(ctx, delivery); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save delivery")
	}

	if err := uc.eventPublisher.Publish(ctx, delivery.Events()...); err != nil {
		log.Warn().Err(err).Str("delivery_id", delivery.ID.String()).Msg("failed to publish delivery event")
	}
	delivery.ClearEvents()

	uc.simulator.Track(delivery.ID, delivery.OrderID)
	telemetry.RecordCounter(ctx, "deliveries_initiated_total", "Deliveries accepted for dispatch", 1)

	return &InitiateDeliveryResponse{
		DeliveryID: delivery.ID.String(),
		Status:     string(delivery.Status),
	}, nil
}
