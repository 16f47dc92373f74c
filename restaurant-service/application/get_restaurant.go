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

// GetRestaurantQuery represents a restaurant lookup with its menu
type GetRestaurantQuery struct {
	RestaurantID string `json:"restaurant_id"`
}

// DishResponse is the catalog view of one dish
type DishResponse struct {
	DishID      string       `json:"dish_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Available   bool         `json:"available"`
}

// GetRestaurantResponse is the restaurant with its menu
type GetRestaurantResponse struct {
	RestaurantID string         `json:"restaurant_id"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Open         bool           `json:"open"`
	Dishes       []DishResponse `json:"dishes"`
}

// GetRestaurant returns a restaurant with its menu
type GetRestaurant struct {
	restaurantRepository domain.RestaurantRepository
}

// NewGetRestaurant creates a new GetRestaurant use case
func NewGetRestaurant(restaurantRepository domain.RestaurantRepository) *GetRestaurant {
	return &GetRestaurant{restaurantRepository: restaurantRepository}
}

// Execute looks up the restaurant and its dishes
func (uc *GetRestaurant) Execute(ctx context.Context, query *GetRestaurantQuery) (*GetRestaurantResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "get_restaurant",
		trace.WithAttributes(attribute.String("restaurant_id", query.RestaurantID)),
	)
	defer span.End()

	restaurantID, err := models.NewID(query.RestaurantID)
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

	dishes, err := uc.restaurantRepository.FindDishesByRestaurant(ctx, restaurantID)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to find dishes")
	}

	response := &GetRestaurantResponse{
		RestaurantID: restaurant.ID.String(),
		Name:         restaurant.Name,
		Address:      restaurant.Address,
		Open:         restaurant.Open,
		Dishes:       make([]DishResponse, 0, len(dishes)),
	}
	for _, dish := range dishes {
		response.Dishes = append(response.Dishes, DishResponse{
			DishID:      dish.ID.String(),
			Name:        dish.Name,
			Description: dish.Description,
			Price:       dish.Price,
			Available:   dish.Available,
		})
	}
	return response, nil
}
