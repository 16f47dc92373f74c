package application

import (
	"context"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UpdateOrderStatusCommand represents an operator status override
type UpdateOrderStatusCommand struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// UpdateOrderStatusResponse reports the override result
type UpdateOrderStatusResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// UpdateOrderStatus forces an order into a given status, skipping the state
// machine guards. It exists for operator correction of stuck orders and is
// deliberately unguarded; abuse shows up in the override counter and event.
type UpdateOrderStatus struct {
	orderRepository domain.OrderRepository
	eventPublisher  events.Publisher
}

// NewUpdateOrderStatus creates a new UpdateOrderStatus use case
func NewUpdateOrderStatus(orderRepository domain.OrderRepository, eventPublisher events.Publisher) *UpdateOrderStatus {
	return &UpdateOrderStatus{
		orderRepository: orderRepository,
		eventPublisher:  eventPublisher,
	}
}

// Execute applies the override
func (uc *UpdateOrderStatus) Execute(ctx context.Context, cmd *UpdateOrderStatusCommand) (*UpdateOrderStatusResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "update_order_status",
		trace.WithAttributes(
			attribute.String("order_id", cmd.OrderID),
			attribute.String("status", cmd.Status),
		),
	)
	defer span.End()

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	order, err := uc.orderRepository.FindByID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find order")
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	previous := order.Status
	if err := order.ForceStatus(domain.OrderStatus(cmd.Status)); err != nil {
		return nil, err
	}

	if err := uc.orderRepository.Save(ctx, order); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save order")
	}

	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		log.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to publish override event")
	}
	order.ClearEvents()

	log.Info().
		Str("order_id", orderID.String()).
		Str("from", string(previous)).
		Str("to", cmd.Status).
		Msg("order status overridden")
	telemetry.RecordCounter(ctx, "order_status_overrides_total", "Operator status overrides", 1,
		attribute.String("to", cmd.Status),
	)

	return &UpdateOrderStatusResponse{
		OrderID: orderID.String(),
		Status:  string(order.Status),
	}, nil
}
