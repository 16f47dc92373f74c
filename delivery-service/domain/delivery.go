package domain

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// DeliveryStatus is the courier-side state of one delivery
type DeliveryStatus string

const (
	DeliveryStatusInProgress DeliveryStatus = "IN_PROGRESS"
	DeliveryStatusDelivered  DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed     DeliveryStatus = "FAILED"
)

// IsTerminal reports whether the delivery reached an outcome
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusFailed
}

var (
	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrDeliveryFinished = errors.New("delivery already finished")
)

// Delivery tracks the physical delivery of one order. Its outcome is
// announced on the event channel; order-service owns the order reaction.
type Delivery struct {
	ID           models.ID
	OrderID      models.ID
	RestaurantID models.ID
	UserID       models.ID
	Status       DeliveryStatus
	InitiatedAt  time.Time
	DeliveredAt  *time.Time
	Timestamps   models.Timestamps

	recorded []*events.Event
}

// InitiateDelivery starts a delivery for an order
func InitiateDelivery(orderID, restaurantID, userID models.ID) *Delivery {
	now := time.Now()
	delivery := &Delivery{
		ID:           models.GenerateUUID(),
		OrderID:      orderID,
		RestaurantID: restaurantID,
		UserID:       userID,
		Status:       DeliveryStatusInProgress,
		InitiatedAt:  now,
		Timestamps:   models.NewTimestamps(),
	}

	delivery.record(events.NewEvent(delivery.ID, events.DeliveryInitiatedEvent, DeliveryInitiatedData{
		DeliveryID: delivery.ID,
		OrderID:    orderID,
	}))
	return delivery
}

// Complete marks the delivery delivered and announces the outcome
func (d *Delivery) Complete() error {
	if d.Status.IsTerminal() {
		return errors.Wrapf(ErrDeliveryFinished, "delivery %s is %s", d.ID, d.Status)
	}

	now := time.Now()
	d.Status = DeliveryStatusDelivered
	d.DeliveredAt = &now
	d.Timestamps = d.Timestamps.Update()

	d.record(events.NewEvent(d.ID, events.DeliveryStatusUpdatedEvent, DeliveryStatusUpdatedData{
		OrderID: d.OrderID,
		Status:  string(DeliveryStatusDelivered),
	}))
	return nil
}

// Fail marks the delivery failed and announces the outcome
func (d *Delivery) Fail() error {
	if d.Status.IsTerminal() {
		return errors.Wrapf(ErrDeliveryFinished, "delivery %s is %s", d.ID, d.Status)
	}

	d.Status = DeliveryStatusFailed
	d.Timestamps = d.Timestamps.Update()

	d.record(events.NewEvent(d.ID, events.DeliveryStatusUpdatedEvent, DeliveryStatusUpdatedData{
		OrderID: d.OrderID,
		Status:  string(DeliveryStatusFailed),
	}))
	return nil
}

// Events returns recorded domain events
func (d *Delivery) Events() []*events.Event {
	return d.recorded
}

// ClearEvents clears recorded domain events
func (d *Delivery) ClearEvents() {
	d.recorded = make([]*events.Event, 0)
}

func (d *Delivery) record(event *events.Event) {
	d.recorded = append(d.recorded, event)
}

// DeliveryInitiatedData is the payload of a delivery.initiated event
type DeliveryInitiatedData struct {
	DeliveryID models.ID `json:"delivery_id"`
	OrderID    models.ID `json:"order_id"`
}

// DeliveryStatusUpdatedData is the payload of a delivery.status.updated
// event. The order id rides along so consumers do not need a lookup.
type DeliveryStatusUpdatedData struct {
	OrderID models.ID `json:"order_id"`
	Status  string    `json:"status"`
}

// DeliveryRepository persists deliveries
type DeliveryRepository interface {
	Save(ctx context.Context, delivery *Delivery) error
	FindByID(ctx context.Context, id models.ID) (*Delivery, error)
	FindByOrderID(ctx context.Context, orderID models.ID) (*Delivery, error)
}
