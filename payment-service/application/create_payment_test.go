package application

import (
	"context"
	"testing"

	"github.com/fooddelivery/order-system/payment-service/domain"
	"github.com/fooddelivery/order-system/payment-service/infrastructure"
	sharedinfra "github.com/fooddelivery/order-system/shared/infrastructure"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment_Execute(t *testing.T) {
	ctx := context.Background()
	orderID := models.GenerateUUID().String()

	tests := []struct {
		name      string
		command   *CreatePaymentCommand
		processor func(*CreatePaymentCommand) domain.PaymentStatus
		wantErr   string
	}{
		{
			name: "successful card charge",
			command: &CreatePaymentCommand{
				OrderID: orderID,
				Amount:  models.NewMoney(2500, "USD"),
				Mode:    "CARD",
			},
		},
		{
			name: "declined charge is recorded and reported",
			command: &CreatePaymentCommand{
				OrderID: orderID,
				Amount:  models.NewMoney(2500, "USD"),
				Mode:    "CARD",
			},
			processor: func(*CreatePaymentCommand) domain.PaymentStatus {
				return domain.PaymentStatusFailed
			},
			wantErr: "failed",
		},
		{
			name: "unsupported mode",
			command: &CreatePaymentCommand{
				OrderID: orderID,
				Amount:  models.NewMoney(2500, "USD"),
				Mode:    "BARTER",
			},
			wantErr: domain.ErrInvalidMode.Error(),
		},
		{
			name: "non-positive amount",
			command: &CreatePaymentCommand{
				OrderID: orderID,
				Amount:  models.NewMoney(0, "USD"),
				Mode:    "CASH",
			},
			wantErr: domain.ErrNonPositiveAmount.Error(),
		},
		{
			name: "invalid order id",
			command: &CreatePaymentCommand{
				OrderID: "nope",
				Amount:  models.NewMoney(2500, "USD"),
				Mode:    "CASH",
			},
			wantErr: "invalid order ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := infrastructure.NewMemoryPaymentRepository()
			bus := sharedinfra.NewMemoryEventBus()
			uc := NewCreatePayment(repo, bus)
			if tt.processor != nil {
				uc = uc.WithProcessor(tt.processor)
			}

			result, err := uc.Execute(ctx, tt.command)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.PaymentID)
			assert.Equal(t, string(domain.PaymentStatusSuccessful), result.Status)
		})
	}
}

func TestGetPaymentByOrder_Execute(t *testing.T) {
	ctx := context.Background()
	repo := infrastructure.NewMemoryPaymentRepository()
	bus := sharedinfra.NewMemoryEventBus()
	orderID := models.GenerateUUID().String()

	created, err := NewCreatePayment(repo, bus).Execute(ctx, &CreatePaymentCommand{
		OrderID: orderID,
		Amount:  models.NewMoney(1800, "USD"),
		Mode:    "PAYPAL",
	})
	require.NoError(t, err)

	found, err := NewGetPaymentByOrder(repo).Execute(ctx, &GetPaymentByOrderQuery{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, created.PaymentID, found.PaymentID)
	assert.Equal(t, orderID, found.OrderID)
	assert.Equal(t, "PAYPAL", found.Mode)
	assert.Equal(t, int64(1800), found.Amount.Amount)

	_, err = NewGetPaymentByOrder(repo).Execute(ctx, &GetPaymentByOrderQuery{
		OrderID: models.GenerateUUID().String(),
	})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

// A declined charge must still leave an audit record behind.
func TestCreatePayment_DeclineIsPersisted(t *testing.T) {
	ctx := context.Background()
	repo := infrastructure.NewMemoryPaymentRepository()
	bus := sharedinfra.NewMemoryEventBus()
	orderID := models.GenerateUUID().String()

	uc := NewCreatePayment(repo, bus).WithProcessor(func(*CreatePaymentCommand) domain.PaymentStatus {
		return domain.PaymentStatusFailed
	})
	_, err := uc.Execute(ctx, &CreatePaymentCommand{
		OrderID: orderID,
		Amount:  models.NewMoney(900, "USD"),
		Mode:    "CARD",
	})
	require.Error(t, err)

	found, err := NewGetPaymentByOrder(repo).Execute(ctx, &GetPaymentByOrderQuery{OrderID: orderID})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentStatusFailed), found.Status)
}
