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

// PlaceOrderCommand represents the command to place an order
type PlaceOrderCommand struct {
	RestaurantID string                  `json:"restaurant_id"`
	UserID       string                  `json:"user_id"`
	PaymentMode  string                  `json:"payment_mode"`
	Items        []PlaceOrderItemRequest `json:"items"`
}

// PlaceOrderItemRequest is one requested order line
type PlaceOrderItemRequest struct {
	DishID   string `json:"dish_id"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderResponse represents the response after placing an order. The
// caller discovers a payment decline by reading the returned status; a
// canceled order is still a successfully placed one.
type PlaceOrderResponse struct {
	OrderID    string       `json:"order_id"`
	Status     string       `json:"status"`
	TotalPrice models.Money `json:"total_price"`
}

// PlaceOrder runs the order saga: validate and price the items against the
// catalog, persist the order, charge payment, and request delivery. The saga
// never blocks on delivery completion; the completion listener applies the
// terminal transition when the delivery outcome event arrives.
type PlaceOrder struct {
	orderRepository domain.OrderRepository
	catalog         domain.CatalogGateway
	payments        domain.PaymentGateway
	deliveries      domain.DeliveryGateway
	eventPublisher  events.Publisher
}

// NewPlaceOrder creates a new PlaceOrder use case
func NewPlaceOrder(
	orderRepository domain.OrderRepository,
	catalog domain.CatalogGateway,
	payments domain.PaymentGateway,
	deliveries domain.DeliveryGateway,
	eventPublisher events.Publisher,
) *PlaceOrder {
	return &PlaceOrder{
		orderRepository: orderRepository,
		catalog:         catalog,
		payments:        payments,
		deliveries:      deliveries,
		eventPublisher:  eventPublisher,
	}
}

// Execute runs the saga and returns the order id. Validation failures abort
// before any persistence; payment failure is a compensating outcome recorded
// as a CANCELED order, not an error.
func (uc *PlaceOrder) Execute(ctx context.Context, cmd *PlaceOrderCommand) (*PlaceOrderResponse, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "place_order",
		trace.WithAttributes(
			attribute.String("restaurant_id", cmd.RestaurantID),
			attribute.String("user_id", cmd.UserID),
			attribute.Int("item_count", len(cmd.Items)),
		),
	)
	defer span.End()

	status := "error"
	defer func() {
		telemetry.RecordCounter(ctx, "orders_placed_total", "Total order placement attempts", 1,
			attribute.String("status", status),
		)
		telemetry.RecordHistogram(ctx, "order_placement_duration_seconds", "Order placement duration",
			time.Since(start).Seconds(),
			attribute.String("status", status),
		)
	}()

	restaurantID, userID, err := uc.parseIdentity(cmd)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	items, err := uc.resolveItems(ctx, cmd.Items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	order, err := domain.PlaceOrder(restaurantID, userID, items)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.save(ctx, order); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to persist order")
	}

	span.SetAttributes(
		attribute.String("order_id", order.ID.String()),
		attribute.Int64("total_price", order.TotalPrice.Amount),
	)

	uc.chargeAndDeliver(ctx, order, cmd.PaymentMode)

	status = "success"
	return &PlaceOrderResponse{
		OrderID:    order.ID.String(),
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
	}, nil
}

func (uc *PlaceOrder) parseIdentity(cmd *PlaceOrderCommand) (models.ID, models.ID, error) {
	restaurantID, err := models.NewID(cmd.RestaurantID)
	if err != nil {
		return "", "", errors.Wrap(err, "invalid restaurant ID")
	}

	userID, err := models.NewID(cmd.UserID)
	if err != nil {
		return "", "", errors.Wrap(err, "invalid user ID")
	}

	return restaurantID, userID, nil
}

// resolveItems prices every requested item against the catalog. The first
// invalid item aborts the whole order, so nothing is persisted for a
// partially valid request.
func (uc *PlaceOrder) resolveItems(ctx context.Context, requested []PlaceOrderItemRequest) ([]domain.OrderItem, error) {
	if len(requested) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	items := make([]domain.OrderItem, 0, len(requested))
	for _, req := range requested {
		dishID, err := models.NewID(req.DishID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid dish ID")
		}

		dish, err := uc.catalog.GetDish(ctx, dishID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve dish %s", dishID)
		}

		if !dish.Available {
			return nil, errors.Wrapf(domain.ErrDishUnavailable, "dish %s", dishID)
		}

		items = append(items, domain.OrderItem{
			DishID:    dishID,
			Quantity:  req.Quantity,
			UnitPrice: dish.Price,
		})
	}

	return items, nil
}

// chargeAndDeliver runs the post-persistence saga steps. Failures past this
// point are compensated through status transitions, never surfaced as
// placement errors.
func (uc *PlaceOrder) chargeAndDeliver(ctx context.Context, order *domain.Order, paymentMode string) {
	err := uc.payments.Pay(ctx, domain.PaymentRequest{
		OrderID: order.ID,
		Amount:  order.TotalPrice,
		Mode:    paymentMode,
	})
	if err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("payment failed, canceling order")
		uc.transition(ctx, order, func() error { return order.Cancel("payment failed") })
		return
	}

	uc.transition(ctx, order, order.MarkPayed)

	err = uc.deliveries.Initiate(ctx, domain.DeliveryRequest{
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		UserID:       order.UserID,
	})
	if err != nil {
		// The order stays PAYED for operator follow-up. There is no automatic
		// retry or refund here yet; the counter makes the limbo visible.
		log.Error().Err(err).Str("order_id", order.ID.String()).
			Msg("delivery initiation failed, order left PAYED")
		telemetry.RecordCounter(ctx, "orders_delivery_initiation_failures_total",
			"Orders stuck PAYED because delivery initiation failed", 1)
		return
	}

	uc.transition(ctx, order, order.StartDelivering)
}

// transition applies a guarded transition and persists it. A version
// conflict means the completion listener got there first; the order is
// re-read and the local write is skipped when it lost the race.
func (uc *PlaceOrder) transition(ctx context.Context, order *domain.Order, apply func() error) {
	if err := apply(); err != nil {
		log.Error().Err(err).Str("order_id", order.ID.String()).Msg("transition rejected")
		return
	}

	err := uc.save(ctx, order)
	if err == nil {
		return
	}

	if errors.Is(err, domain.ErrVersionConflict) {
		current, readErr := uc.orderRepository.FindByID(ctx, order.ID)
		if readErr != nil || current == nil {
			log.Error().Err(readErr).Str("order_id", order.ID.String()).
				Msg("failed to re-read order after version conflict")
			return
		}
		*order = *current
		log.Info().Str("order_id", order.ID.String()).Str("status", string(order.Status)).
			Msg("skipping stale status write, completion event won the race")
		return
	}

	log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to persist order transition")
}

func (uc *PlaceOrder) save(ctx context.Context, order *domain.Order) error {
	if err := uc.orderRepository.Save(ctx, order); err != nil {
		return err
	}

	if err := uc.eventPublisher.Publish(ctx, order.Events()...); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to publish order events")
	}
	order.ClearEvents()
	return nil
}
