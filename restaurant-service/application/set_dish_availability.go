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

// SetDishAvailabilityCommand toggles whether a dish can be ordered
type SetDishAvailabilityCommand struct {
	DishID    string `json:"dish_id"`
	Available bool   `json:"available"`
}

// SetDishAvailability marks a dish orderable or sold out
type SetDishAvailability struct {
	restaurantRepository domain.RestaurantRepository
}

// NewSetDishAvailability creates a new SetDishAvailability use case
func NewSetDishAvailability(restaurantRepository domain.RestaurantRepository) *SetDishAvailability {
	return &SetDishAvailability{restaurantRepository: restaurantRepository}
}

// Execute applies the availability change
func (uc *SetDishAvailability) Execute(ctx context.Context, cmd *SetDishAvailabilityCommand) error {
	ctx, span := telemetry.StartSpan(ctx, "set_dish_availability",
		trace.WithAttributes(
			attribute.String("dish_id", cmd.DishID),
			attribute.Bool("available", cmd.Available),
		),
	)
	defer span.End()

	dishID, err := models.NewID(cmd.DishID)
	if err != nil {
		return errors.Wrap(err, "invalid dish ID")
	}

	dish, err := uc.restaurantRepository.FindDishByID(ctx, dishID)
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to find dish")
	}
	if dish == nil {
		return domain.ErrDishNotFound
	}

	dish.SetAvailable(cmd.Available)
	if err := uc.restaurantRepository.SaveDish(ctx, dish); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to save dish")
	}
	return nil
}
