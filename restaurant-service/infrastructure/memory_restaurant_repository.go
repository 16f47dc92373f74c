package infrastructure

import (
	"context"
	"sync"

	"github.com/fooddelivery/order-system/restaurant-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
)

// MemoryRestaurantRepository implements RestaurantRepository in memory
type MemoryRestaurantRepository struct {
	mu          sync.RWMutex
	restaurants map[models.ID]*domain.Restaurant
	dishes      map[models.ID]*domain.Dish
}

// NewMemoryRestaurantRepository creates a new MemoryRestaurantRepository
func NewMemoryRestaurantRepository() *MemoryRestaurantRepository {
	return &MemoryRestaurantRepository{
		restaurants: make(map[models.ID]*domain.Restaurant),
		dishes:      make(map[models.ID]*domain.Dish),
	}
}

// SaveRestaurant stores a restaurant copy
func (r *MemoryRestaurantRepository) SaveRestaurant(ctx context.Context, restaurant *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *restaurant
	r.restaurants[restaurant.ID] = &clone
	return nil
}

// FindRestaurantByID returns a restaurant copy, or nil when unknown
func (r *MemoryRestaurantRepository) FindRestaurantByID(ctx context.Context, id models.ID) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.restaurants[id]
	if !exists {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

// SaveDish stores a dish copy
func (r *MemoryRestaurantRepository) SaveDish(ctx context.Context, dish *domain.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *dish
	r.dishes[dish.ID] = &clone
	return nil
}

// FindDishByID returns a dish copy, or nil when unknown
func (r *MemoryRestaurantRepository) FindDishByID(ctx context.Context, id models.ID) (*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.dishes[id]
	if !exists {
		return nil, nil
	}
	clone := *stored
	return &clone, nil
}

// FindDishesByRestaurant returns copies of all dishes for a restaurant
func (r *MemoryRestaurantRepository) FindDishesByRestaurant(ctx context.Context, restaurantID models.ID) ([]*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dishes := make([]*domain.Dish, 0)
	for _, dish := range r.dishes {
		if dish.RestaurantID == restaurantID {
			clone := *dish
			dishes = append(dishes, &clone)
		}
	}
	return dishes, nil
}
