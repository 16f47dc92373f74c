package infrastructure

import (
	"context"
	"sync"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
)

// MemoryDeliveryRepository implements DeliveryRepository in memory
type MemoryDeliveryRepository struct {
	mu         sync.RWMutex
	deliveries map[models.ID]*domain.Delivery
	byOrder    map[models.ID]models.ID
}

// NewMemoryDeliveryRepository creates a new MemoryDeliveryRepository
func NewMemoryDeliveryRepository() *MemoryDeliveryRepository {
	return &MemoryDeliveryRepository{
		deliveries: make(map[models.ID]*domain.Delivery),
		byOrder:    make(map[models.ID]models.ID),
	}
}

// Save stores a delivery copy
func (r *MemoryDeliveryRepository) Save(ctx context.Context, delivery *domain.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deliveries[delivery.ID] = copyDelivery(delivery)
	r.byOrder[delivery.OrderID] = delivery.ID
	return nil
}

// FindByID returns a delivery copy, or nil when unknown
func (r *MemoryDeliveryRepository) FindByID(ctx context.Context, id models.ID) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.deliveries[id]
	if !exists {
		return nil, nil
	}
	return copyDelivery(stored), nil
}

// FindByOrderID returns the delivery for an order, or nil when unknown
func (r *MemoryDeliveryRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byOrder[orderID]
	if !exists {
		return nil, nil
	}
	return copyDelivery(r.deliveries[id]), nil
}

func copyDelivery(delivery *domain.Delivery) *domain.Delivery {
	clone := *delivery
	if delivery.DeliveredAt != nil {
		at := *delivery.DeliveredAt
		clone.DeliveredAt = &at
	}
	clone.ClearEvents()
	return &clone
}
