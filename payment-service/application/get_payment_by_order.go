package application

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/payment-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetPaymentByOrderQuery represents a payment lookup by order
type GetPaymentByOrderQuery struct {
	OrderID string `json:"order_id"`
}

// GetPaymentByOrderResponse is the payment view for an order
type GetPaymentByOrderResponse struct {
	PaymentID string       `json:"payment_id"`
	OrderID   string       `json:"order_id"`
	Amount    models.Money `json:"amount"`
	Mode      string       `json:"payment_mode"`
	Status    string       `json:"status"`
	PayedOn   time.Time    `json:"payed_on"`
}

// GetPaymentByOrder returns the payment recorded for an order
type GetPaymentByOrder struct {
	paymentRepository domain.PaymentRepository
}

// NewGetPaymentByOrder creates a new GetPaymentByOrder use case
func NewGetPaymentByOrder(paymentRepository domain.PaymentRepository) *GetPaymentByOrder {
	return &GetPaymentByOrder{paymentRepository: paymentRepository}
}

// Execute looks up the payment
func (uc *GetPaymentByOrder) Execute(ctx context.Context, query *GetPaymentByOrderQuery) (*GetPaymentByOrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "get_payment_by_order",
		trace.WithAttributes(attribute.String("order_id", query.OrderID)),
	)
	defer span.End()

	orderID, err := models.NewID(query.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	payment, err := uc.paymentRepository.FindByOrderID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find payment")
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}

	return &GetPaymentByOrderResponse{
		PaymentID: payment.ID.String(),
		OrderID:   payment.OrderID.String(),
		Amount:    payment.Amount,
		Mode:      string(payment.Mode),
		Status:    string(payment.Status),
		PayedOn:   payment.PayedOn,
	}, nil
}
