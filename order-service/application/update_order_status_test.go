package application

import (
	"context"
	"testing"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/order-service/mocks"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateOrderStatus_Execute(t *testing.T) {
	orderID := "550e8400-e29b-41d4-a716-446655440040"

	tests := []struct {
		name       string
		command    *UpdateOrderStatusCommand
		setupMocks func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		wantErr    string
		wantStatus string
	}{
		{
			name:    "override skips transition guards",
			command: &UpdateOrderStatusCommand{OrderID: orderID, Status: "DELIVERED"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				// A PLACED order could never reach DELIVERED through the state machine.
				order := payedOrder(t, orderID)
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(order, nil).Once()
				repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
					return o.Status == domain.OrderStatusDelivered
				})).Return(nil).Once()
				publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(evt *events.Event) bool {
					return evt.EventType == events.OrderStatusOverriddenEvent
				})).Return(nil).Once()
			},
			wantStatus: "DELIVERED",
		},
		{
			name:    "unknown status value is rejected",
			command: &UpdateOrderStatusCommand{OrderID: orderID, Status: "SHIPPED"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(payedOrder(t, orderID), nil).Once()
			},
			wantErr: domain.ErrInvalidStatus.Error(),
		},
		{
			name:    "missing order",
			command: &UpdateOrderStatusCommand{OrderID: orderID, Status: "CANCELED"},
			setupMocks: func(repo *mocks.MockOrderRepository, publisher *mocks.MockPublisher) {
				repo.EXPECT().FindByID(mock.Anything, models.ID(orderID)).Return(nil, nil).Once()
			},
			wantErr: domain.ErrOrderNotFound.Error(),
		},
		{
			name:       "invalid order id",
			command:    &UpdateOrderStatusCommand{OrderID: "nope", Status: "CANCELED"},
			setupMocks: func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			wantErr:    "invalid order ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := mocks.NewMockOrderRepository(t)
			mockPublisher := mocks.NewMockPublisher(t)
			tt.setupMocks(mockRepo, mockPublisher)

			uc := NewUpdateOrderStatus(mockRepo, mockPublisher)
			result, err := uc.Execute(context.Background(), tt.command)

			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, result)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, orderID, result.OrderID)
			assert.Equal(t, tt.wantStatus, result.Status)
		})
	}
}
