package config

import (
	"context"
	"fmt"

	"github.com/fooddelivery/order-system/payment-service/application"
	"github.com/fooddelivery/order-system/payment-service/handlers"
	"github.com/fooddelivery/order-system/payment-service/infrastructure"
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
	PaymentRepository *infrastructure.PostgresPaymentRepository

	// Use Cases
	CreatePayment     *application.CreatePayment
	GetPaymentByOrder *application.GetPaymentByOrder

	// HTTP Handlers
	PaymentHandlers *handlers.PaymentHandlers

	// Infrastructure
	EventPublisher *sharedinfra.SNSPublisherAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	if config.Telemetry.Enabled {
		telConfig := telemetry.PaymentServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
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

	deps.PaymentRepository = infrastructure.NewPostgresPaymentRepository(db)

	deps.CreatePayment = application.NewCreatePayment(deps.PaymentRepository, eventPublisher)
	deps.GetPaymentByOrder = application.NewGetPaymentByOrder(deps.PaymentRepository)

	deps.PaymentHandlers = handlers.NewPaymentHandlers(deps.CreatePayment, deps.GetPaymentByOrder)

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
