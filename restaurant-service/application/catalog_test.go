package application

import (
	"context"
	"testing"

	"github.com/fooddelivery/order-system/restaurant-service/domain"
	"github.com/fooddelivery/order-system/restaurant-service/infrastructure"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := infrastructure.NewMemoryRestaurantRepository()

	createRestaurant := NewCreateRestaurant(repo)
	getRestaurant := NewGetRestaurant(repo)
	addDish := NewAddDish(repo)
	getDish := NewGetDish(repo)
	setAvailability := NewSetDishAvailability(repo)

	created, err := createRestaurant.Execute(ctx, &CreateRestaurantCommand{
		Name:    "Thai Garden",
		Address: "12 Noodle Street",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.RestaurantID)

	dish, err := addDish.Execute(ctx, &AddDishCommand{
		RestaurantID: created.RestaurantID,
		Name:         "Pad Thai",
		Description:  "Rice noodles",
		Price:        models.NewMoney(1250, "USD"),
	})
	require.NoError(t, err)

	fetched, err := getDish.Execute(ctx, &GetDishQuery{DishID: dish.DishID})
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", fetched.Name)
	assert.Equal(t, int64(1250), fetched.Price.Amount)
	assert.True(t, fetched.Available)

	require.NoError(t, setAvailability.Execute(ctx, &SetDishAvailabilityCommand{
		DishID:    dish.DishID,
		Available: false,
	}))

	fetched, err = getDish.Execute(ctx, &GetDishQuery{DishID: dish.DishID})
	require.NoError(t, err)
	assert.False(t, fetched.Available)

	menu, err := getRestaurant.Execute(ctx, &GetRestaurantQuery{RestaurantID: created.RestaurantID})
	require.NoError(t, err)
	assert.Equal(t, "Thai Garden", menu.Name)
	require.Len(t, menu.Dishes, 1)
	assert.Equal(t, dish.DishID, menu.Dishes[0].DishID)
}

func TestCatalogValidation(t *testing.T) {
	ctx := context.Background()
	repo := infrastructure.NewMemoryRestaurantRepository()

	t.Run("restaurant requires a name", func(t *testing.T) {
		_, err := NewCreateRestaurant(repo).Execute(ctx, &CreateRestaurantCommand{Address: "nowhere"})
		assert.ErrorContains(t, err, "name is required")
	})

	t.Run("dish requires a positive price", func(t *testing.T) {
		created, err := NewCreateRestaurant(repo).Execute(ctx, &CreateRestaurantCommand{Name: "Sushi Go"})
		require.NoError(t, err)

		_, err = NewAddDish(repo).Execute(ctx, &AddDishCommand{
			RestaurantID: created.RestaurantID,
			Name:         "Free Roll",
			Price:        models.NewMoney(0, "USD"),
		})
		assert.ErrorContains(t, err, "price must be positive")
	})

	t.Run("dish for unknown restaurant", func(t *testing.T) {
		_, err := NewAddDish(repo).Execute(ctx, &AddDishCommand{
			RestaurantID: models.GenerateUUID().String(),
			Name:         "Orphan Dish",
			Price:        models.NewMoney(500, "USD"),
		})
		assert.ErrorIs(t, err, domain.ErrRestaurantNotFound)
	})

	t.Run("unknown dish lookup", func(t *testing.T) {
		_, err := NewGetDish(repo).Execute(ctx, &GetDishQuery{DishID: models.GenerateUUID().String()})
		assert.ErrorIs(t, err, domain.ErrDishNotFound)
	})
}
