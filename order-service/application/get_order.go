package application

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// GetOrderDetailsQuery represents the query for a denormalized order view
type GetOrderDetailsQuery struct {
	OrderID string `json:"order_id"`
}

// OrderItemView is one order line in the details view. Dish carries the
// catalog's current name/description/availability and is nil when the
// catalog could not be reached; the stored id/quantity/price always remain.
type OrderItemView struct {
	DishID    string       `json:"dish_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	Dish      *domain.Dish `json:"dish,omitempty"`
}

// GetOrderDetailsResponse aggregates the order with its payment and delivery
// views. Payment and Delivery are nil when the collaborator has no record or
// could not be reached; the view is partial by design, never an error.
type GetOrderDetailsResponse struct {
	OrderID     string                  `json:"order_id"`
	UserID      string                  `json:"user_id"`
	Restaurant  string                  `json:"restaurant_id"`
	Items       []OrderItemView         `json:"items"`
	TotalPrice  models.Money            `json:"total_price"`
	Status      string                  `json:"status"`
	DeliveredAt *time.Time              `json:"delivered_at,omitempty"`
	Payment     *domain.PaymentDetails  `json:"payment,omitempty"`
	Delivery    *domain.DeliveryDetails `json:"delivery,omitempty"`
}

// GetOrderDetails reads an order and fans out to the catalog, payment, and
// delivery collaborators for their side of the story
type GetOrderDetails struct {
	orderRepository domain.OrderRepository
	catalog         domain.CatalogGateway
	payments        domain.PaymentGateway
	deliveries      domain.DeliveryGateway
}

// NewGetOrderDetails creates a new GetOrderDetails use case
func NewGetOrderDetails(
	orderRepository domain.OrderRepository,
	catalog domain.CatalogGateway,
	payments domain.PaymentGateway,
	deliveries domain.DeliveryGateway,
) *GetOrderDetails {
	return &GetOrderDetails{
		orderRepository: orderRepository,
		catalog:         catalog,
		payments:        payments,
		deliveries:      deliveries,
	}
}

// Execute returns the denormalized view. Only a missing order is an error;
// collaborator lookups degrade to nil sections.
func (uc *GetOrderDetails) Execute(ctx context.Context, query *GetOrderDetailsQuery) (*GetOrderDetailsResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "get_order_details",
		trace.WithAttributes(attribute.String("order_id", query.OrderID)),
	)
	defer span.End()

	orderID, err := models.NewID(query.OrderID)
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

	response := &GetOrderDetailsResponse{
		OrderID:     order.ID.String(),
		UserID:      order.UserID.String(),
		Restaurant:  order.RestaurantID.String(),
		Items:       make([]OrderItemView, 0, len(order.Items)),
		TotalPrice:  order.TotalPrice,
		Status:      string(order.Status),
		DeliveredAt: order.DeliveredAt,
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, OrderItemView{
			DishID:    item.DishID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range response.Items {
		// Each goroutine writes its own item index.
		item := &response.Items[i]
		g.Go(func() error {
			dishID := models.ID(item.DishID)
			dish, err := uc.catalog.GetDish(gctx, dishID)
			if err != nil {
				log.Warn().Err(err).Str("dish_id", item.DishID).Msg("dish view unavailable")
				return nil
			}
			item.Dish = dish
			return nil
		})
	}
	g.Go(func() error {
		payment, err := uc.payments.GetPaymentByOrder(gctx, orderID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", orderID.String()).Msg("payment view unavailable")
			return nil
		}
		response.Payment = payment
		return nil
	})
	g.Go(func() error {
		delivery, err := uc.deliveries.GetDeliveryByOrder(gctx, orderID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", orderID.String()).Msg("delivery view unavailable")
			return nil
		}
		response.Delivery = delivery
		return nil
	})
	_ = g.Wait()

	return response, nil
}
