package application

import (
	"context"
	"testing"
	"time"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/order-service/mocks"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetOrderDetails_Execute(t *testing.T) {
	orderID := "550e8400-e29b-41d4-a716-446655440030"

	dish := availableDish(testDishID, 1000)
	payment := &domain.PaymentDetails{
		PaymentID: models.GenerateUUID(),
		OrderID:   models.ID(orderID),
		Mode:      "CARD",
		Status:    "SUCCESSFUL",
		PayedOn:   time.Now(),
	}
	delivery := &domain.DeliveryDetails{
		DeliveryID:  models.GenerateUUID(),
		OrderID:     models.ID(orderID),
		Status:      "IN_PROGRESS",
		InitiatedAt: time.Now(),
	}

	tests := []struct {
		name         string
		query        *GetOrderDetailsQuery
		setupMocks   func(*mocks.MockOrderRepository, *mocks.MockCatalogGateway, *mocks.MockPaymentGateway, *mocks.MockDeliveryGateway)
		wantErr      string
		wantDish     bool
		wantPayment  bool
		wantDelivery bool
	}{
		{
			name:  "full view when all collaborators answer",
			query: &GetOrderDetailsQuery{OrderID: orderID},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(payedOrder(t, orderID), nil).Once()
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(dish, nil).Once()
				payments.EXPECT().GetPaymentByOrder(mock.Anything, models.ID(orderID)).Return(payment, nil).Once()
				deliveries.EXPECT().GetDeliveryByOrder(mock.Anything, models.ID(orderID)).Return(delivery, nil).Once()
			},
			wantDish:     true,
			wantPayment:  true,
			wantDelivery: true,
		},
		{
			name:  "items keep stored fields when catalog lookup fails",
			query: &GetOrderDetailsQuery{OrderID: orderID},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(payedOrder(t, orderID), nil).Once()
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(nil, errors.New("restaurant service down")).Once()
				payments.EXPECT().GetPaymentByOrder(mock.Anything, models.ID(orderID)).Return(payment, nil).Once()
				deliveries.EXPECT().GetDeliveryByOrder(mock.Anything, models.ID(orderID)).Return(delivery, nil).Once()
			},
			wantPayment:  true,
			wantDelivery: true,
		},
		{
			name:  "partial view when payment lookup fails",
			query: &GetOrderDetailsQuery{OrderID: orderID},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(payedOrder(t, orderID), nil).Once()
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(dish, nil).Once()
				payments.EXPECT().GetPaymentByOrder(mock.Anything, models.ID(orderID)).Return(nil, errors.New("payment service down")).Once()
				deliveries.EXPECT().GetDeliveryByOrder(mock.Anything, models.ID(orderID)).Return(delivery, nil).Once()
			},
			wantDish:     true,
			wantDelivery: true,
		},
		{
			name:  "partial view when delivery lookup fails",
			query: &GetOrderDetailsQuery{OrderID: orderID},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(payedOrder(t, orderID), nil).Once()
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(dish, nil).Once()
				payments.EXPECT().GetPaymentByOrder(mock.Anything, models.ID(orderID)).Return(payment, nil).Once()
				deliveries.EXPECT().GetDeliveryByOrder(mock.Anything, models.ID(orderID)).Return(nil, errors.New("delivery service down")).Once()
			},
			wantDish:    true,
			wantPayment: true,
		},
		{
			name:  "order not found",
			query: &GetOrderDetailsQuery{OrderID: orderID},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(nil, nil).Once()
			},
			wantErr: domain.ErrOrderNotFound.Error(),
		},
		{
			name:       "invalid order id",
			query:      &GetOrderDetailsQuery{OrderID: "nope"},
			setupMocks: func(*mocks.MockOrderRepository, *mocks.MockCatalogGateway, *mocks.MockPaymentGateway, *mocks.MockDeliveryGateway) {},
			wantErr:    "invalid order ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockCatalog := mocks.NewMockCatalogGateway(t)
			mockPayments := mocks.NewMockPaymentGateway(t)
			mockDeliveries := mocks.NewMockDeliveryGateway(t)
			tt.setupMocks(mockRepo, mockCatalog, mockPayments, mockDeliveries)

			uc := NewGetOrderDetails(mockRepo, mockCatalog, mockPayments, mockDeliveries)
			result, err := uc.Execute(context.Background(), tt.query)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, orderID, result.OrderID)
			assert.Equal(t, string(domain.OrderStatusPayed), result.Status)
			assert.Len(t, result.Items, 1)
			assert.Equal(t, testDishID, result.Items[0].DishID)
			assert.Equal(t, int64(1000), result.TotalPrice.Amount)
			if tt.wantDish {
				assert.Equal(t, dish, result.Items[0].Dish)
			} else {
				assert.Nil(t, result.Items[0].Dish)
			}
			if tt.wantPayment {
				assert.Equal(t, payment, result.Payment)
			} else {
				assert.Nil(t, result.Payment)
			}
			if tt.wantDelivery {
				assert.Equal(t, delivery, result.Delivery)
			} else {
				assert.Nil(t, result.Delivery)
			}
		})
	}
}
