package config

import (
	"context"
	"fmt"

	"github.com/fooddelivery/order-system/delivery-service/application"
	"github.com/fooddelivery/order-system/delivery-service/handlers"
	"github.com/fooddelivery/order-system/delivery-service/infrastructure"
	sharedinfra "github.com/fooddelivery/order-system/shared/infrastructure"
	"github.com/fooddelivery/order-system/shared/telemetry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	DeliveryRepository *infrastructure.PostgresDeliveryRepository

	// Use Cases
	InitiateDelivery   *application.InitiateDelivery
	GetDeliveryByOrder *application.GetDeliveryByOrder
	CancelDelivery     *application.CancelDelivery

	// Simulated courier pool
	Simulator *application.Simulator

	// HTTP Handlers
	DeliveryHandlers *handlers.DeliveryHandlers

	// Infrastructure
	EventPublisher *sharedinfra.SNSPublisherAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if config.Telemetry.Enabled {
		telConfig := telemetry.DeliveryServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
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

	eventPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.EventPublisher = eventPublisher

	deps.DeliveryRepository = infrastructure.NewPostgresDeliveryRepository(db)

	deps.Simulator = application.NewSimulator(
		deps.DeliveryRepository,
		eventPublisher,
		application.WithDelayRange(config.Simulator.MinDelay, config.Simulator.MaxDelay),
	)

	deps.InitiateDelivery = application.NewInitiateDelivery(deps.DeliveryRepository, eventPublisher, deps.Simulator)
	deps.GetDeliveryByOrder = application.NewGetDeliveryByOrder(deps.DeliveryRepository)
	deps.CancelDelivery = application.NewCancelDelivery(deps.DeliveryRepository, deps.Simulator)

	deps.DeliveryHandlers = handlers.NewDeliveryHandlers(
		deps.InitiateDelivery,
		deps.GetDeliveryByOrder,
		deps.CancelDelivery,
	)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	if d.Simulator != nil {
		d.Simulator.Shutdown()
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.EventPublisher != nil {
		if err := d.EventPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
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
