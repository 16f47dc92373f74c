package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresDeliveryRepository implements DeliveryRepository using PostgreSQL
type PostgresDeliveryRepository struct {
	db *sqlx.DB
}

// NewPostgresDeliveryRepository creates a new PostgresDeliveryRepository
func NewPostgresDeliveryRepository(db *sqlx.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

type postgresDelivery struct {
	ID           string     `db:"id"`
	OrderID      string     `db:"order_id"`
	RestaurantID string     `db:"restaurant_id"`
	UserID       string     `db:"user_id"`
	Status       string     `db:"status"`
	InitiatedAt  time.Time  `db:"initiated_at"`
	DeliveredAt  *time.Time `db:"delivered_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Save upserts a delivery
func (r *PostgresDeliveryRepository) Save(ctx context.Context, delivery *domain.Delivery) error {
	query := `
		INSERT INTO deliveries (id, order_id, restaurant_id, user_id, status, initiated_at, delivered_at, created_at, updated_at)
		VALUES (:id, :order_id, :restaurant_id, :user_id, :status, :initiated_at, :delivered_at, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET status = :status, delivered_at = :delivered_at, updated_at = :updated_at`

	row := postgresDelivery{
		ID:           delivery.ID.String(),
		OrderID:      delivery.OrderID.String(),
		RestaurantID: delivery.RestaurantID.String(),
		UserID:       delivery.UserID.String(),
		Status:       string(delivery.Status),
		InitiatedAt:  delivery.InitiatedAt,
		DeliveredAt:  delivery.DeliveredAt,
		CreatedAt:    delivery.Timestamps.CreatedAt,
		UpdatedAt:    delivery.Timestamps.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return errors.Wrap(err, "failed to save delivery")
	}
	return nil
}

// FindByID finds a delivery by ID
func (r *PostgresDeliveryRepository) FindByID(ctx context.Context, id models.ID) (*domain.Delivery, error) {
	return r.findOne(ctx, "id = $1", id.String())
}

// FindByOrderID finds the delivery for an order
func (r *PostgresDeliveryRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Delivery, error) {
	return r.findOne(ctx, "order_id = $1", orderID.String())
}

func (r *PostgresDeliveryRepository) findOne(ctx context.Context, where, arg string) (*domain.Delivery, error) {
	query := `
		SELECT id, order_id, restaurant_id, user_id, status, initiated_at, delivered_at, created_at, updated_at
		FROM deliveries
		WHERE ` + where

	var row postgresDelivery
	err := r.db.GetContext(ctx, &row, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find delivery")
	}
	return toDomainDelivery(&row)
}

func toDomainDelivery(row *postgresDelivery) (*domain.Delivery, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid delivery ID")
	}
	orderID, err := models.NewID(row.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}
	restaurantID, err := models.NewID(row.RestaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}
	userID, err := models.NewID(row.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	return &domain.Delivery{
		ID:           id,
		OrderID:      orderID,
		RestaurantID: restaurantID,
		UserID:       userID,
		Status:       domain.DeliveryStatus(row.Status),
		InitiatedAt:  row.InitiatedAt,
		DeliveredAt:  row.DeliveredAt,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}
