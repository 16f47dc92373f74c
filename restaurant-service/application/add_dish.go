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

// AddDishCommand represents the command to add a dish to a menu
type AddDishCommand struct {
	RestaurantID string       `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        models.Money `json:"price"`
}

// AddDishResponse represents the response after adding a dish
type AddDishResponse struct {
	DishID string `json:"dish_id"`
}

// AddDish adds a dish to an existing restaurant's menu
type AddDish struct {
	restaurantRepository domain.RestaurantRepository
}

// NewAddDish creates a new AddDish use case
func NewAddDish(restaurantRepository domain.RestaurantRepository) *AddDish {
	return &AddDish{restaurantRepository: restaurantRepository}
}

// Execute adds the dish
func (uc *AddDish) Execute(ctx context.Context, cmd *AddDishCommand) (*AddDishResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "add_dish",
		trace.WithAttributes(
			attribute.String("restaurant_id", cmd.RestaurantID),
			attribute.String("name", cmd.Name),
		),
	)
	defer span.End()

	restaurantID, err := models.NewID(cmd.RestaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}

	restaurant, err := uc.restaurantRepository.FindRestaurantByID(ctx, restaurantID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find restaurant")
	}
	if restaurant == nil {
		return nil, domain.ErrRestaurantNotFound
	}

	dish, err := domain.NewDish(restaurantID, cmd.Name, cmd.Description, cmd.Price)
	if err != nil {
		return nil, err
	}

	if err := uc.restaurantRepository.SaveDish(ctx, dish); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save dish")
	}

	return &AddDishResponse{DishID: dish.ID.String()}, nil
}
