package config

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fooddelivery/order-system/order-service/application"
	"github.com/fooddelivery/order-system/order-service/handlers"
	"github.com/fooddelivery/order-system/order-service/infrastructure"
	"github.com/fooddelivery/order-system/shared/events"
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
	OrderRepository *infrastructure.PostgresOrderRepository
	EventStore      *sharedinfra.PostgresEventStore

	// Gateways
	CatalogGateway  *infrastructure.HTTPCatalogGateway
	PaymentGateway  *infrastructure.HTTPPaymentGateway
	DeliveryGateway *infrastructure.HTTPDeliveryGateway

	// Use Cases
	PlaceOrder           *application.PlaceOrder
	GetOrderDetails      *application.GetOrderDetails
	UpdateOrderStatus    *application.UpdateOrderStatus
	ProcessDeliveryEvent *application.ProcessDeliveryEvent

	// HTTP Handlers
	OrderHandlers *handlers.OrderHandlers

	// Event Handlers
	DeliveryEventHandlers *handlers.DeliveryEventHandlers

	// Infrastructure
	EventPublisher  events.Publisher
	EventSubscriber *sharedinfra.SQSSubscriberAdapter

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()

	snsPublisher *sharedinfra.SNSPublisherAdapter
}

func BuildDependencies(ctx context.Context, config *Config) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.OrderServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			// Continue without telemetry rather than failing
			log.Warn().Err(err).Msg("failed to initialize telemetry")
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", config.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.DB = db

	// Initialize messaging. Every published event is journaled into the
	// event store before it goes out on SNS.
	snsPublisher, err := sharedinfra.NewSNSPublisherAdapter(config.AWS.SNSTopicArn)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}
	deps.snsPublisher = snsPublisher
	deps.EventStore = sharedinfra.NewPostgresEventStore(db)
	deps.EventPublisher = sharedinfra.NewJournalingPublisher(deps.EventStore, snsPublisher)

	eventSubscriber, err := sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create SQS subscriber: %w", err)
	}
	deps.EventSubscriber = eventSubscriber

	// Initialize repositories and gateways
	deps.OrderRepository = infrastructure.NewPostgresOrderRepository(db)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	deps.CatalogGateway = infrastructure.NewHTTPCatalogGateway(config.Gateways.RestaurantURL, httpClient)
	deps.PaymentGateway = infrastructure.NewHTTPPaymentGateway(config.Gateways.PaymentURL, httpClient)
	deps.DeliveryGateway = infrastructure.NewHTTPDeliveryGateway(config.Gateways.DeliveryURL, httpClient)

	// Initialize use cases
	deps.PlaceOrder = application.NewPlaceOrder(
		deps.OrderRepository,
		deps.CatalogGateway,
		deps.PaymentGateway,
		deps.DeliveryGateway,
		deps.EventPublisher,
	)
	deps.GetOrderDetails = application.NewGetOrderDetails(deps.OrderRepository, deps.CatalogGateway, deps.PaymentGateway, deps.DeliveryGateway)
	deps.UpdateOrderStatus = application.NewUpdateOrderStatus(deps.OrderRepository, deps.EventPublisher)
	deps.ProcessDeliveryEvent = application.NewProcessDeliveryEvent(deps.OrderRepository, deps.EventPublisher)

	// Initialize handlers
	deps.OrderHandlers = handlers.NewOrderHandlers(deps.PlaceOrder, deps.GetOrderDetails, deps.UpdateOrderStatus)
	deps.DeliveryEventHandlers = handlers.NewDeliveryEventHandlers(deps.ProcessDeliveryEvent)

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

	if d.snsPublisher != nil {
		if err := d.snsPublisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event publisher: %w", err))
		}
	}

	if d.EventSubscriber != nil {
		if err := d.EventSubscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event subscriber: %w", err))
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
