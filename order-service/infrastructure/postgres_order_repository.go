package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order row
type postgresOrder struct {
	ID            string     `db:"id"`
	RestaurantID  string     `db:"restaurant_id"`
	UserID        string     `db:"user_id"`
	TotalAmount   int64      `db:"total_amount"`
	TotalCurrency string     `db:"total_currency"`
	Status        string     `db:"status"`
	DeliveredAt   *time.Time `db:"delivered_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	Version       int        `db:"version"`
}

// postgresOrderItem represents an order line row
type postgresOrderItem struct {
	OrderID       string `db:"order_id"`
	DishID        string `db:"dish_id"`
	Quantity      int    `db:"quantity"`
	UnitAmount    int64  `db:"unit_amount"`
	UnitCurrency  string `db:"unit_currency"`
}

// Save persists an order. A freshly placed order is inserted together with
// its items in one transaction; every later save is a status update guarded
// by a compare-and-set on the previous version.
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	for _, event := range order.Events() {
		if event.EventType == events.OrderPlacedEvent {
			return r.insertOrder(ctx, order)
		}
	}
	return r.updateOrder(ctx, order)
}

func (r *PostgresOrderRepository) insertOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (
			id, restaurant_id, user_id, total_amount, total_currency,
			status, delivered_at, created_at, updated_at, version
		) VALUES (
			:id, :restaurant_id, :user_id, :total_amount, :total_currency,
			:status, :delivered_at, :created_at, :updated_at, :version
		)`

	if _, err := tx.NamedExecContext(ctx, orderQuery, r.toPostgres(order)); err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	itemQuery := `
		INSERT INTO order_items (order_id, dish_id, quantity, unit_amount, unit_currency)
		VALUES (:order_id, :dish_id, :quantity, :unit_amount, :unit_currency)`

	for _, item := range order.Items {
		row := postgresOrderItem{
			OrderID:      order.ID.String(),
			DishID:       item.DishID.String(),
			Quantity:     item.Quantity,
			UnitAmount:   item.UnitPrice.Amount,
			UnitCurrency: item.UnitPrice.Currency,
		}
		if _, err := tx.NamedExecContext(ctx, itemQuery, row); err != nil {
			return errors.Wrap(err, "failed to insert order item")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit order")
	}
	return nil
}

func (r *PostgresOrderRepository) updateOrder(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, delivered_at = :delivered_at,
			updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":           order.ID.String(),
		"status":       string(order.Status),
		"delivered_at": order.DeliveredAt,
		"updated_at":   order.Timestamps.UpdatedAt,
		"version":      order.Version.Value,
		"old_version":  order.Version.Value - 1,
	})
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to check update result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrVersionConflict, "order %s version %d", order.ID, order.Version.Value-1)
	}
	return nil
}

// FindByID finds an order with its items
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, restaurant_id, user_id, total_amount, total_currency,
			   status, delivered_at, created_at, updated_at, version
		FROM orders
		WHERE id = $1`

	var pgOrder postgresOrder
	err := r.db.GetContext(ctx, &pgOrder, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Order not found
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	itemQuery := `
		SELECT order_id, dish_id, quantity, unit_amount, unit_currency
		FROM order_items
		WHERE order_id = $1`

	var pgItems []postgresOrderItem
	if err := r.db.SelectContext(ctx, &pgItems, itemQuery, id.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find order items")
	}

	return r.toDomain(&pgOrder, pgItems)
}

// toPostgres converts domain order to postgres model
func (r *PostgresOrderRepository) toPostgres(order *domain.Order) *postgresOrder {
	return &postgresOrder{
		ID:            order.ID.String(),
		RestaurantID:  order.RestaurantID.String(),
		UserID:        order.UserID.String(),
		TotalAmount:   order.TotalPrice.Amount,
		TotalCurrency: order.TotalPrice.Currency,
		Status:        string(order.Status),
		DeliveredAt:   order.DeliveredAt,
		CreatedAt:     order.Timestamps.CreatedAt,
		UpdatedAt:     order.Timestamps.UpdatedAt,
		Version:       order.Version.Value,
	}
}

// toDomain converts postgres models to a domain order
func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder, pgItems []postgresOrderItem) (*domain.Order, error) {
	id, err := models.NewID(pgOrder.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	restaurantID, err := models.NewID(pgOrder.RestaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}

	userID, err := models.NewID(pgOrder.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}

	items := make([]domain.OrderItem, 0, len(pgItems))
	for _, pgItem := range pgItems {
		dishID, err := models.NewID(pgItem.DishID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid dish ID")
		}
		items = append(items, domain.OrderItem{
			DishID:    dishID,
			Quantity:  pgItem.Quantity,
			UnitPrice: models.NewMoney(pgItem.UnitAmount, pgItem.UnitCurrency),
		})
	}

	return &domain.Order{
		ID:           id,
		RestaurantID: restaurantID,
		UserID:       userID,
		Items:        items,
		TotalPrice:   models.NewMoney(pgOrder.TotalAmount, pgOrder.TotalCurrency),
		Status:       domain.OrderStatus(pgOrder.Status),
		DeliveredAt:  pgOrder.DeliveredAt,
		Timestamps: models.Timestamps{
			CreatedAt: pgOrder.CreatedAt,
			UpdatedAt: pgOrder.UpdatedAt,
		},
		Version: models.Version{Value: pgOrder.Version},
	}, nil
}
