package infrastructure

import (
	"context"
	"sync"

	"github.com/fooddelivery/order-system/payment-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
)

// MemoryPaymentRepository implements PaymentRepository in memory
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[models.ID]*domain.Payment
}

// NewMemoryPaymentRepository creates a new MemoryPaymentRepository
func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments: make(map[models.ID]*domain.Payment),
	}
}

// Save stores a payment copy keyed by order
func (r *MemoryPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *payment
	clone.ClearEvents()
	r.payments[payment.OrderID] = &clone
	return nil
}

// FindByOrderID returns the payment for an order, or nil when unknown
func (r *MemoryPaymentRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.payments[orderID]
	if !exists {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}
