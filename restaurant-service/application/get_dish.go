package application

import (
	"context"

	"github.com/fooddelivery/order-system/restaurant-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetDishQuery represents a dish lookup
type GetDishQuery struct {
	DishID string `json:"dish_id"`
}

// GetDishResponse is the wire shape order-service prices against
type GetDishResponse struct {
	DishID       string       `json:"dish_id"`
	RestaurantID string       `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        models.Money `json:"price"`
	Available    bool         `json:"available"`
}

// GetDish resolves a single dish for order validation
type GetDish struct {
	restaurantRepository domain.RestaurantRepository
}

// NewGetDish creates a new GetDish use case
func NewGetDish(restaurantRepository domain.RestaurantRepository) *GetDish {
	return &GetDish{restaurantRepository: restaurantRepository}
}

// Execute looks up the dish
func (uc *GetDish) Execute(ctx context.Context, query *GetDishQuery) (*GetDishResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "get_dish",
		trace.WithAttributes(attribute.String("dish_id", query.DishID)),
	)
	defer span.End()

	dishID, err := models.NewID(query.DishID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dish ID")
	}

	dish, err := uc.restaurantRepository.FindDishByID(ctx, dishID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find dish")
	}
	if dish == nil {
		return nil, domain.ErrDishNotFound
	}

	return &GetDishResponse{
		DishID:       dish.ID.String(),
		RestaurantID: dish.RestaurantID.String(),
		Name:         dish.Name,
		Description:  dish.Description,
		Price:        dish.Price,
		Available:    dish.Available,
	}, nil
}
