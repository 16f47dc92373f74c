package application

import (
	"context"
	"testing"
	"time"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/order-service/mocks"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func deliveringOrder(t *testing.T, id string) *domain.Order {
	t.Helper()
	order := payedOrder(t, id)
	require.NoError(t, order.StartDelivering())
	order.ClearEvents()
	return order
}

func payedOrder(t *testing.T, id string) *domain.Order {
	t.Helper()
	order, err := domain.PlaceOrder(models.ID(testRestaurantID), models.ID(testUserID), []domain.OrderItem{
		{DishID: models.ID(testDishID), Quantity: 1, UnitPrice: models.NewMoney(1000, "USD")},
	})
	require.NoError(t, err)
	order.ID = models.ID(id)
	require.NoError(t, order.MarkPayed())
	order.ClearEvents()
	return order
}

func deliveryEvent(orderID, status string) *events.Event {
	return events.NewEvent(models.ID(orderID), events.DeliveryStatusUpdatedEvent, DeliveryStatusPayload{
		OrderID: orderID,
		Status:  status,
	})
}

func TestProcessDeliveryEvent_Execute(t *testing.T) {
	orderID := "550e8400-e29b-41d4-a716-446655440020"

	tests := []struct {
		name       string
		event      *events.Event
		setupMocks func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		wantErr    string
	}{
		{
			name:  "delivered event completes a delivering order",
			event: deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(deliveringOrder(t, orderID), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.Status == domain.OrderStatusDelivered && o.DeliveredAt != nil
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderDeliveredEvent
				})).Return(nil).Once()
			},
		},
		{
			name:  "failed event cancels a delivering order",
			event: deliveryEvent(orderID, "FAILED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(deliveringOrder(t, orderID), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.Status == domain.OrderStatusCanceled
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderCanceledEvent
				})).Return(nil).Once()
			},
		},
		{
			name:  "event racing ahead of the delivering write lands on payed",
			event: deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(payedOrder(t, orderID), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.Status == domain.OrderStatusDelivered
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "duplicate event on terminal order is absorbed",
			event: deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				order := deliveringOrder(t, orderID)
				require.NoError(t, order.CompleteDelivery(time.Now()))
				order.ClearEvents()
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(order, nil).Once()
			},
		},
		{
			name:  "version conflict retries with a fresh read",
			event: deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(deliveringOrder(t, orderID), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Once()
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(deliveringOrder(t, orderID), nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:       "unknown order is dropped without error",
			event:      deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(nil, nil).Once()
			},
		},
		{
			name:       "unknown delivery status is dropped without error",
			event:      deliveryEvent(orderID, "TELEPORTED"),
			setupMocks: func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
		},
		{
			name:       "malformed order id is dropped without error",
			event:      deliveryEvent("not-a-uuid", "DELIVERED"),
			setupMocks: func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
		},
		{
			name:  "illegal transition is dropped without error",
			event: deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				order, err := domain.PlaceOrder(models.ID(testRestaurantID), models.ID(testUserID), []domain.OrderItem{
					{DishID: models.ID(testDishID), Quantity: 1, UnitPrice: models.NewMoney(1000, "USD")},
				})
				require.NoError(t, err)
				order.ID = models.ID(orderID)
				order.ClearEvents()
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(order, nil).Once()
			},
		},
		{
			name:  "repository read failure is returned for redelivery",
			event: deliveryEvent(orderID, "DELIVERED"),
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: "failed to find order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			tt.setupMocks(mockRepo, mockPublisher)

			uc := NewProcessDeliveryEvent(mockRepo, mockPublisher)
			err := uc.Execute(context.Background(), tt.event)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessDeliveryEvent_GivesUpAfterRepeatedConflicts(t *testing.T) {
	orderID := "550e8400-e29b-41d4-a716-446655440021"
	mockRepo := mocks.NewMockOrderRepository(t)
	mockPublisher := mocks.NewMockPublisher(t)

	mockRepo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).
		RunAndReturn(func(ctx context.Context, id models.ID) (*domain.Order, error) {
			return deliveringOrder(t, orderID), nil
		}).Times(3)
	mockRepo.EXPECT().Save(mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Times(3)

	uc := NewProcessDeliveryEvent(mockRepo, mockPublisher)
	err := uc.Execute(context.Background(), deliveryEvent(orderID, "DELIVERED"))
	assert.ErrorContains(t, err, "gave up")
}
