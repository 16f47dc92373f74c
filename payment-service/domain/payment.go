package domain

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// PaymentMode is how the user pays
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeCard   PaymentMode = "CARD"
	PaymentModePaypal PaymentMode = "PAYPAL"
)

// IsValid reports whether the mode is one of the supported values
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeCard, PaymentModePaypal:
		return true
	}
	return false
}

// PaymentStatus is the outcome of a charge attempt
type PaymentStatus string

const (
	PaymentStatusSuccessful PaymentStatus = "SUCCESSFUL"
	PaymentStatusFailed     PaymentStatus = "FAILED"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidMode       = errors.New("invalid payment mode")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)

// Payment records the outcome of charging one order
type Payment struct {
	ID         models.ID
	OrderID    models.ID
	Amount     models.Money
	Mode       PaymentMode
	Status     PaymentStatus
	PayedOn    time.Time
	Timestamps models.Timestamps

	recorded []*events.Event
}

// RecordPayment records a charge outcome for an order
func RecordPayment(orderID models.ID, amount models.Money, mode PaymentMode, status PaymentStatus) (*Payment, error) {
	if !mode.IsValid() {
		return nil, errors.Wrapf(ErrInvalidMode, "mode %q", mode)
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	now := time.Now()
	payment := &Payment{
		ID:         models.GenerateUUID(),
		OrderID:    orderID,
		Amount:     amount,
		Mode:       mode,
		Status:     status,
		PayedOn:    now,
		Timestamps: models.NewTimestamps(),
	}

	payment.recorded = append(payment.recorded, events.NewEvent(payment.ID, events.PaymentRecordedEvent, PaymentRecordedData{
		PaymentID: payment.ID,
		OrderID:   orderID,
		Amount:    amount,
		Mode:      mode,
		Status:    status,
	}))
	return payment, nil
}

// Events returns recorded domain events
func (p *Payment) Events() []*events.Event {
	return p.recorded
}

// ClearEvents clears recorded domain events
func (p *Payment) ClearEvents() {
	p.recorded = make([]*events.Event, 0)
}

// PaymentRecordedData is the payload of a payment.recorded event
type PaymentRecordedData struct {
	PaymentID models.ID     `json:"payment_id"`
	OrderID   models.ID     `json:"order_id"`
	Amount    models.Money  `json:"amount"`
	Mode      PaymentMode   `json:"payment_mode"`
	Status    PaymentStatus `json:"status"`
}

// PaymentRepository persists payments
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByOrderID(ctx context.Context, orderID models.ID) (*Payment, error)
}
