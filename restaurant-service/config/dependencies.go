package config

import (
	"context"
	"fmt"

	"github.com/fooddelivery/order-system/restaurant-service/application"
	"github.com/fooddelivery/order-system/restaurant-service/handlers"
	"github.com/fooddelivery/order-system/restaurant-service/infrastructure"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	RestaurantRepository *infrastructure.PostgresRestaurantRepository

	// Use Cases
	CreateRestaurant    *application.CreateRestaurant
	GetRestaurant       *application.GetRestaurant
	AddDish             *application.AddDish
	GetDish             *application.GetDish
	SetDishAvailability *application.SetDishAvailability

	// HTTP Handlers
	RestaurantHandlers *handlers.RestaurantHandlers

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if config.Telemetry.Enabled {
		telConfig := telemetry.RestaurantServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize telemetry")
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	deps.RestaurantRepository = infrastructure.NewPostgresRestaurantRepository(db)

	deps.CreateRestaurant = application.NewCreateRestaurant(deps.RestaurantRepository)
	deps.GetRestaurant = application.NewGetRestaurant(deps.RestaurantRepository)
	deps.AddDish = application.NewAddDish(deps.RestaurantRepository)
	deps.GetDish = application.NewGetDish(deps.RestaurantRepository)
	deps.SetDishAvailability = application.NewSetDishAvailability(deps.RestaurantRepository)

	deps.RestaurantHandlers = handlers.NewRestaurantHandlers(
		deps.CreateRestaurant,
		deps.GetRestaurant,
		deps.AddDish,
		deps.GetDish,
		deps.SetDishAvailability,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}
	return nil
}
