package application

import (
	"context"

	"github.com/fooddelivery/order-system/payment-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreatePaymentCommand represents the command to charge an order
type CreatePaymentCommand struct {
	OrderID string       `json:"order_id"`
	Amount  models.Money `json:"amount"`
	Mode    string       `json:"payment_mode"`
}

// CreatePaymentResponse represents the charge outcome
type CreatePaymentResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// CreatePayment charges an order and records the outcome. There is no real
// payment provider behind it; cash always succeeds and card/paypal succeed
// unless the processor hook rejects them.
type CreatePayment struct {
	paymentRepository domain.PaymentRepository
	eventPublisher    events.Publisher
	processor         func(cmd *CreatePaymentCommand) domain.PaymentStatus
}

// NewCreatePayment creates a new CreatePayment use case
func NewCreatePayment(paymentRepository domain.PaymentRepository, eventPublisher events.Publisher) *CreatePayment {
	return &CreatePayment{
		paymentRepository: paymentRepository,
		eventPublisher:    eventPublisher,
		processor: func(*CreatePaymentCommand) domain.PaymentStatus {
			return domain.PaymentStatusSuccessful
		},
	}
}

// WithProcessor swaps the charge decision hook
func (uc *CreatePayment) WithProcessor(processor func(cmd *CreatePaymentCommand) domain.PaymentStatus) *CreatePayment {
	uc.processor = processor
	return uc
}

// Execute charges the order. A failed charge is recorded and reported with
// an error so the caller's saga can compensate.
func (uc *CreatePayment) Execute(ctx context.Context, cmd *CreatePaymentCommand) (*CreatePaymentResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "create_payment",
		trace.WithAttributes(
			attribute.String("order_id", cmd.OrderID),
			attribute.String("payment_mode", cmd.Mode),
		),
	)
	defer span.End()

	orderID, err := models.NewID(cmd.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	status := uc.processor(cmd)
	payment, err := domain.RecordPayment(orderID, cmd.Amount, domain.PaymentMode(cmd.Mode), status)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.paymentRepository.Save(ctx, payment); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save payment")
	}

	if err := uc.eventPublisher.Publish(ctx, payment.Events()...); err != nil {
		log.Warn().Err(err).Str("payment_id", payment.ID.String()).Msg("failed to publish payment event")
	}
	payment.ClearEvents()

	telemetry.RecordCounter(ctx, "payments_recorded_total", "Recorded charge outcomes", 1,
		attribute.String("status", string(status)),
	)

	if status == domain.PaymentStatusFailed {
		return nil, errors.Errorf("payment %s failed", payment.ID)
	}

	return &CreatePaymentResponse{
		PaymentID: payment.ID.String(),
		Status:    string(payment.Status),
	}, nil
}
