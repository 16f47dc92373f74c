package application

import (
	"context"
	"testing"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/order-service/mocks"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testRestaurantID = "550e8400-e29b-41d4-a716-446655440001"
	testUserID       = "550e8400-e29b-41d4-a716-446655440002"
	testDishID       = "550e8400-e29b-41d4-a716-446655440003"
	testSecondDishID = "550e8400-e29b-41d4-a716-446655440004"
)

func availableDish(id string, cents int64) *domain.Dish {
	return &domain.Dish{
		ID:        models.ID(id),
		Name:      "dish",
		Price:     models.NewMoney(cents, "USD"),
		Available: true,
	}
}

func TestPlaceOrder_Execute(t *testing.T) {
	tests := []struct {
		name           string
		command        *PlaceOrderCommand
		setupMocks     func(*mocks.MockOrderRepository, *mocks.MockCatalogGateway, *mocks.MockPaymentGateway, *mocks.MockDeliveryGateway, *mocks.MockPublisher)
		expectedError  string
		expectedStatus string
		expectedTotal  int64
	}{
		{
			name: "successful saga ends delivering",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				PaymentMode:  "CARD",
				Items: []PlaceOrderItemRequest{
					{DishID: testDishID, Quantity: 2},
					{DishID: testSecondDishID, Quantity: 1},
				},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway, publisher *mocks.MockPublisher) {
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(availableDish(testDishID, 1000), nil).Once()
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testSecondDishID)).Return(availableDish(testSecondDishID, 500), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Times(3)
				payments.EXPECT().Pay(mock.Anything, mock.MatchedBy(func(req domain.PaymentRequest) bool {
					return req.Amount.Amount == 2500 && req.Mode == "CARD"
				})).Return(nil).Once()
				deliveries.EXPECT().Initiate(mock.Anything, mock.AnythingOfType("domain.DeliveryRequest")).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(3)
			},
			expectedStatus: string(domain.OrderStatusDelivering),
			expectedTotal:  2500,
		},
		{
			name: "payment failure cancels the order but the placement succeeds",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				PaymentMode:  "CARD",
				Items:        []PlaceOrderItemRequest{{DishID: testDishID, Quantity: 1}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway, publisher *mocks.MockPublisher) {
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(availableDish(testDishID, 1000), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Times(2)
				payments.EXPECT().Pay(mock.Anything, mock.AnythingOfType("domain.PaymentRequest")).Return(errors.New("card declined")).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(2)
			},
			expectedStatus: string(domain.OrderStatusCanceled),
			expectedTotal:  1000,
		},
		{
			name: "delivery initiation failure leaves the order payed",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				PaymentMode:  "CASH",
				Items:        []PlaceOrderItemRequest{{DishID: testDishID, Quantity: 1}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway, publisher *mocks.MockPublisher) {
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(availableDish(testDishID, 1000), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Times(2)
				payments.EXPECT().Pay(mock.Anything, mock.AnythingOfType("domain.PaymentRequest")).Return(nil).Once()
				deliveries.EXPECT().Initiate(mock.Anything, mock.AnythingOfType("domain.DeliveryRequest")).Return(errors.New("dispatch unreachable")).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(2)
			},
			expectedStatus: string(domain.OrderStatusPayed),
			expectedTotal:  1000,
		},
		{
			name: "unknown dish aborts before persistence",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				Items:        []PlaceOrderItemRequest{{DishID: testDishID, Quantity: 1}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway, publisher *mocks.MockPublisher) {
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(nil, domain.ErrDishNotFound).Once()
			},
			expectedError: "failed to resolve dish",
		},
		{
			name: "unavailable dish aborts before persistence",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				Items:        []PlaceOrderItemRequest{{DishID: testDishID, Quantity: 1}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway, publisher *mocks.MockPublisher) {
				dish := availableDish(testDishID, 1000)
				dish.Available = false
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(dish, nil).Once()
			},
			expectedError: domain.ErrDishUnavailable.Error(),
		},
		{
			name: "empty item list is rejected",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				Items:        []PlaceOrderItemRequest{},
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockCatalogGateway, *mocks.MockPaymentGateway, *mocks.MockDeliveryGateway, *mocks.MockPublisher) {},
			expectedError: domain.ErrEmptyOrder.Error(),
		},
		{
			name: "invalid restaurant ID",
			command: &PlaceOrderCommand{
				RestaurantID: "not-a-uuid",
				UserID:       testUserID,
				Items:        []PlaceOrderItemRequest{{DishID: testDishID, Quantity: 1}},
			},
			setupMocks:    func(*mocks.MockOrderRepository, *mocks.MockCatalogGateway, *mocks.MockPaymentGateway, *mocks.MockDeliveryGateway, *mocks.MockPublisher) {},
			expectedError: "invalid restaurant ID",
		},
		{
			name: "persistence failure aborts the saga",
			command: &PlaceOrderCommand{
				RestaurantID: testRestaurantID,
				UserID:       testUserID,
				Items:        []PlaceOrderItemRequest{{DishID: testDishID, Quantity: 1}},
			},
			setupMocks: func(repo *mocks.MockOrderRepository, catalog *mocks.MockCatalogGateway, payments *mocks.MockPaymentGateway, deliveries *mocks.MockDeliveryGateway, publisher *mocks.MockPublisher) {
				catalog.EXPECT().GetDish(mock.Anything, models.ID(testDishID)).Return(availableDish(testDishID, 1000), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.AnythingOfType("*domain.Order")).Return(errors.New("connection refused")).Once()
			},
			expectedError: "failed to persist order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockCatalog := mocks.NewMockCatalogGateway(t)
			mockPayments := mocks.NewMockPaymentGateway(t)
			mockDeliveries := mocks.NewMockDeliveryGateway(t)
			mockPublisher := mocks.NewMockPublisher(t)
			tt.setupMocks(mockRepo, mockCatalog, mockPayments, mockDeliveries, mockPublisher)

			uc := NewPlaceOrder(mockRepo, mockCatalog, mockPayments, mockDeliveries, mockPublisher)
			result, err := uc.Execute(context.Background(), tt.command)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, result.OrderID)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedTotal, result.TotalPrice.Amount)
			assert.Equal(t, "USD", result.TotalPrice.Currency)
		})
	}
}
