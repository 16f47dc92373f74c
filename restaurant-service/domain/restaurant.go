package domain

import (
	"context"

	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
)

// Restaurant is a catalog entry offering dishes
type Restaurant struct {
	ID         models.ID
	Name       string
	Address    string
	Open       bool
	Timestamps models.Timestamps
}

// Dish belongs to exactly one restaurant. Availability gates ordering, so an
// out-of-stock dish stays in the catalog without being orderable.
type Dish struct {
	ID           models.ID
	RestaurantID models.ID
	Name         string
	Description  string
	Price        models.Money
	Available    bool
	Timestamps   models.Timestamps
}

// NewRestaurant creates an open restaurant
func NewRestaurant(name, address string) (*Restaurant, error) {
	if name == "" {
		return nil, errors.New("restaurant name is required")
	}

	return &Restaurant{
		ID:         models.GenerateUUID(),
		Name:       name,
		Address:    address,
		Open:       true,
		Timestamps: models.NewTimestamps(),
	}, nil
}

// NewDish creates an available dish for a restaurant
func NewDish(restaurantID models.ID, name, description string, price models.Money) (*Dish, error) {
	if name == "" {
		return nil, errors.New("dish name is required")
	}
	if !price.IsPositive() {
		return nil, errors.New("dish price must be positive")
	}

	return &Dish{
		ID:           models.GenerateUUID(),
		RestaurantID: restaurantID,
		Name:         name,
		Description:  description,
		Price:        price,
		Available:    true,
		Timestamps:   models.NewTimestamps(),
	}, nil
}

// SetAvailable toggles whether the dish can be ordered
func (d *Dish) SetAvailable(available bool) {
	d.Available = available
	d.Timestamps = d.Timestamps.Update()
}

// RestaurantRepository persists restaurants and their dishes
type RestaurantRepository interface {
	SaveRestaurant(ctx context.Context, restaurant *Restaurant) error
	FindRestaurantByID(ctx context.Context, id models.ID) (*Restaurant, error)
	SaveDish(ctx context.Context, dish *Dish) error
	FindDishByID(ctx context.Context, id models.ID) (*Dish, error)
	FindDishesByRestaurant(ctx context.Context, restaurantID models.ID) ([]*Dish, error)
}
