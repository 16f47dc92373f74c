package application

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetDeliveryByOrderQuery represents a delivery lookup by order
type GetDeliveryByOrderQuery struct {
	OrderID string `json:"order_id"`
}

// GetDeliveryByOrderResponse is the delivery view for an order
type GetDeliveryByOrderResponse struct {
	DeliveryID  string     `json:"delivery_id"`
	OrderID     string     `json:"order_id"`
	Status      string     `json:"status"`
	InitiatedAt time.Time  `json:"initiated_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// GetDeliveryByOrder returns the delivery tracked for an order
type GetDeliveryByOrder struct {
	deliveryRepository domain.DeliveryRepository
}

// NewGetDeliveryByOrder creates a new GetDeliveryByOrder use case
func NewGetDeliveryByOrder(deliveryRepository domain.DeliveryRepository) *GetDeliveryByOrder {
	return &GetDeliveryByOrder{deliveryRepository: deliveryRepository}
}

// Execute looks up the delivery
func (uc *GetDeliveryByOrder) Execute(ctx context.Context, query *GetDeliveryByOrderQuery) (*GetDeliveryByOrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "get_delivery_by_order",
		trace.WithAttributes(attribute.String("order_id", query.OrderID)),
	)
	defer span.End()

	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	delivery, err := uc.deliveryRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find delivery")
	}
	if delivery == nil {
		return nil, domain.ErrDeliveryNotFound
	}

	return &GetDeliveryByOrderResponse{
		DeliveryID:  delivery.ID.String(),
		OrderID:     delivery.OrderID.String(),
		Status:      string(delivery.Status),
		InitiatedAt: delivery.InitiatedAt,
		DeliveredAt: delivery.DeliveredAt,
	}, nil
}
