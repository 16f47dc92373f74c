package infrastructure

import (
	"context"
	"sync"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// MemoryOrderRepository implements OrderRepository in memory for local runs
// and tests. It enforces the same compare-and-set semantics as the postgres
// implementation so racing writers fail the same way.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[models.ID]*domain.Order
}

// NewMemoryOrderRepository creates a new MemoryOrderRepository
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[models.ID]*domain.Order),
	}
}

// Save persists an order copy. Inserts require an unused id; updates require
// the stored version to be exactly one behind the incoming one.
func (r *MemoryOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isInsert(order) {
		if _, exists := r.orders[order.ID]; exists {
			return errors.Errorf("order %s already exists", order.ID)
		}
		r.orders[order.ID] = copyOrder(order)
		return nil
	}

	stored, exists := r.orders[order.ID]
	if !exists {
		return errors.Wrapf(domain.ErrOrderNotFound, "order %s", order.ID)
	}
	if stored.Version.Value != order.Version.Value-1 {
		return errors.Wrapf(domain.ErrVersionConflict, "order %s version %d", order.ID, order.Version.Value-1)
	}

	r.orders[order.ID] = copyOrder(order)
	return nil
}

// FindByID returns a copy of the stored order, or nil when unknown
func (r *MemoryOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.orders[id]
	if !exists {
		return nil, nil
	}
	return copyOrder(stored), nil
}

func (r *MemoryOrderRepository) isInsert(order *domain.Order) bool {
	for _, event := range order.Events() {
		if event.EventType == events.OrderPlacedEvent {
			return true
		}
	}
	return false
}

// copyOrder deep-copies so callers cannot mutate stored state through aliases
func copyOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	if order.DeliveredAt != nil {
		at := *order.DeliveredAt
		clone.DeliveredAt = &at
	}
	clone.ClearEvents()
	return &clone
}
