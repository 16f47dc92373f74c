package domain

import (
	"time"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusPayed      OrderStatus = "PAYED"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

// IsTerminal reports whether the status accepts no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// IsValid reports whether the status is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPayed, OrderStatusDelivering,
		OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrOrderNotFound     = errors.New("order not found")
	ErrDishNotFound      = errors.New("dish not found")
	ErrDishUnavailable   = errors.New("dish is not available")
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrVersionConflict   = errors.New("order was modified concurrently")
	ErrInvalidStatus     = errors.New("unknown order status")
)

// OrderItem is a line of an order. UnitPrice is captured from the catalog at
// placement time; later catalog price changes never affect an existing order.
type OrderItem struct {
	DishID    models.ID    `json:"dish_id"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
}

// Order aggregate root. Status is the single source of truth for saga
// progress; every transition is guarded here and persisted with a
// compare-and-set on Version.
type Order struct {
	ID           models.ID
	RestaurantID models.ID
	UserID       models.ID
	Items        []OrderItem
	TotalPrice   models.Money
	Status       OrderStatus
	DeliveredAt  *time.Time
	Timestamps   models.Timestamps
	Version      models.Version

	events []*events.Event
}

// PlaceOrder factory method. Computes the total once; the total is never
// recomputed after payment begins.
func PlaceOrder(restaurantID, userID models.ID, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	total := models.NewMoney(0, items[0].UnitPrice.Currency)
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, errors.Errorf("item %s has non-positive quantity %d", item.DishID, item.Quantity)
		}
		line := item.UnitPrice.Times(item.Quantity)
		sum, err := total.Add(line)
		if err != nil {
			return nil, errors.Wrap(err, "failed to total order items")
		}
		total = sum
	}

	order := &Order{
		ID:           models.GenerateUUID(),
		RestaurantID: restaurantID,
		UserID:       userID,
		Items:        items,
		TotalPrice:   total,
		Status:       OrderStatusPlaced,
		Timestamps:   models.NewTimestamps(),
		Version:      models.NewVersion(),
	}

	order.recordEvent(events.NewEvent(order.ID, events.OrderPlacedEvent, OrderPlacedData{
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		UserID:       order.UserID,
		TotalPrice:   order.TotalPrice,
		Items:        order.Items,
	}))

	return order, nil
}

// MarkPayed transitions the order to PAYED after a successful charge
func (o *Order) MarkPayed() error {
	if o.Status != OrderStatusPlaced {
		return errors.Wrapf(ErrIllegalTransition, "cannot mark %s order as payed", o.Status)
	}

	o.Status = OrderStatusPayed
	o.touch()

	o.recordEvent(events.NewEvent(o.ID, events.OrderPayedEvent, OrderPayedData{
		OrderID: o.ID,
		Amount:  o.TotalPrice,
	}))
	return nil
}

// Cancel is the compensating transition. Terminal orders absorb the call
// without error so late or duplicate compensation is a no-op.
func (o *Order) Cancel(reason string) error {
	if o.Status.IsTerminal() {
		return nil
	}

	o.Status = OrderStatusCanceled
	o.touch()

	o.recordEvent(events.NewEvent(o.ID, events.OrderCanceledEvent, OrderCanceledData{
		OrderID: o.ID,
		Reason:  reason,
	}))
	return nil
}

// StartDelivering transitions the order to DELIVERING once delivery
// initiation has been accepted
func (o *Order) StartDelivering() error {
	if o.Status != OrderStatusPayed {
		return errors.Wrapf(ErrIllegalTransition, "cannot start delivering %s order", o.Status)
	}

	o.Status = OrderStatusDelivering
	o.touch()

	o.recordEvent(events.NewEvent(o.ID, events.OrderDeliveringEvent, OrderDeliveringData{
		OrderID: o.ID,
	}))
	return nil
}

// CompleteDelivery applies the terminal DELIVERED transition. The guard
// accepts PAYED as well as DELIVERING because the completion event can race
// ahead of the local DELIVERING write. Terminal orders absorb the call.
func (o *Order) CompleteDelivery(at time.Time) error {
	if o.Status.IsTerminal() {
		return nil
	}
	if o.Status != OrderStatusDelivering && o.Status != OrderStatusPayed {
		return errors.Wrapf(ErrIllegalTransition, "cannot complete delivery of %s order", o.Status)
	}

	o.Status = OrderStatusDelivered
	o.DeliveredAt = &at
	o.touch()

	o.recordEvent(events.NewEvent(o.ID, events.OrderDeliveredEvent, OrderDeliveredData{
		OrderID:     o.ID,
		DeliveredAt: at,
	}))
	return nil
}

// FailDelivery applies the terminal CANCELED transition for a failed
// delivery, with the same guard and absorption as CompleteDelivery
func (o *Order) FailDelivery(reason string) error {
	if o.Status.IsTerminal() {
		return nil
	}
	if o.Status != OrderStatusDelivering && o.Status != OrderStatusPayed {
		return errors.Wrapf(ErrIllegalTransition, "cannot fail delivery of %s order", o.Status)
	}

	o.Status = OrderStatusCanceled
	o.touch()

	o.recordEvent(events.NewEvent(o.ID, events.OrderCanceledEvent, OrderCanceledData{
		OrderID: o.ID,
		Reason:  reason,
	}))
	return nil
}

// ForceStatus sets the status with no transition guard. Administrative
// escape hatch; the caller owns the consequences.
func (o *Order) ForceStatus(status OrderStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	previous := o.Status
	o.Status = status
	o.touch()

	o.recordEvent(events.NewEvent(o.ID, events.OrderStatusOverriddenEvent, OrderStatusOverriddenData{
		OrderID:        o.ID,
		PreviousStatus: previous,
		NewStatus:      status,
	}))
	return nil
}

func (o *Order) touch() {
	o.Timestamps = o.Timestamps.Update()
	o.Version = o.Version.Update()
}

// Events returns recorded domain events
func (o *Order) Events() []*events.Event {
	return o.events
}

// ClearEvents clears recorded domain events
func (o *Order) ClearEvents() {
	o.events = make([]*events.Event, 0)
}

func (o *Order) recordEvent(event *events.Event) {
	o.events = append(o.events, event)
}

// Event Data Structures
type OrderPlacedData struct {
	OrderID      models.ID    `json:"order_id"`
	RestaurantID models.ID    `json:"restaurant_id"`
	UserID       models.ID    `json:"user_id"`
	TotalPrice   models.Money `json:"total_price"`
	Items        []OrderItem  `json:"items"`
}

type OrderPayedData struct {
	OrderID models.ID    `json:"order_id"`
	Amount  models.Money `json:"amount"`
}

type OrderCanceledData struct {
	OrderID models.ID `json:"order_id"`
	Reason  string    `json:"reason"`
}

type OrderDeliveringData struct {
	OrderID models.ID `json:"order_id"`
}

type OrderDeliveredData struct {
	OrderID     models.ID `json:"order_id"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type OrderStatusOverriddenData struct {
	OrderID        models.ID   `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
}
