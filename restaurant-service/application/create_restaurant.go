package application

import (
	"context"

	"github.com/fooddelivery/order-system/restaurant-service/domain"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CreateRestaurantCommand represents the command to register a restaurant
type CreateRestaurantCommand struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CreateRestaurantResponse represents the response after registration
type CreateRestaurantResponse struct {
	RestaurantID string `json:"restaurant_id"`
}

// CreateRestaurant registers a new restaurant in the catalog
type CreateRestaurant struct {
	restaurantRepository domain.RestaurantRepository
}

// NewCreateRestaurant creates a new CreateRestaurant use case
func NewCreateRestaurant(restaurantRepository domain.RestaurantRepository) *CreateRestaurant {
	return &CreateRestaurant{restaurantRepository: restaurantRepository}
}

// Execute registers the restaurant
func (uc *CreateRestaurant) Execute(ctx context.Context, cmd *CreateRestaurantCommand) (*CreateRestaurantResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "create_restaurant",
		trace.WithAttributes(attribute.String("name", cmd.Name)),
	)
	defer span.End()

	restaurant, err := domain.NewRestaurant(cmd.Name, cmd.Address)
	if err != nil {
		return nil, err
	}

	if err := uc.restaurantRepository.SaveRestaurant(ctx, restaurant); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to save restaurant")
	}

	return &CreateRestaurantResponse{RestaurantID: restaurant.ID.String()}, nil
}
