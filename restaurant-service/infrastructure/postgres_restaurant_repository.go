package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/fooddelivery/order-system/restaurant-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresRestaurantRepository implements RestaurantRepository using PostgreSQL
type PostgresRestaurantRepository struct {
	db *sqlx.DB
}

// NewPostgresRestaurantRepository creates a new PostgresRestaurantRepository
func NewPostgresRestaurantRepository(db *sqlx.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{db: db}
}

type postgresRestaurant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	Open      bool      `db:"open"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type postgresDish struct {
	ID            string    `db:"id"`
	RestaurantID  string    `db:"restaurant_id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	PriceAmount   int64     `db:"price_amount"`
	PriceCurrency string    `db:"price_currency"`
	Available     bool      `db:"available"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// SaveRestaurant upserts a restaurant
func (r *PostgresRestaurantRepository) SaveRestaurant(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, address, open, created_at, updated_at)
		VALUES (:id, :name, :address, :open, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET name = :name, address = :address, open = :open, updated_at = :updated_at`

	row := postgresRestaurant{
		ID:        restaurant.ID.String(),
		Name:      restaurant.Name,
		Address:   restaurant.Address,
		Open:      restaurant.Open,
		CreatedAt: restaurant.Timestamps.CreatedAt,
		UpdatedAt: restaurant.Timestamps.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return errors.Wrap(err, "failed to save restaurant")
	}
	return nil
}

// FindRestaurantByID finds a restaurant by ID
func (r *PostgresRestaurantRepository) FindRestaurantByID(ctx context.Context, id models.ID) (*domain.Restaurant, error) {
	query := `
		SELECT id, name, address, open, created_at, updated_at
		FROM restaurants
		WHERE id = $1`

	var row postgresRestaurant
	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find restaurant")
	}

	restaurantID, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}
	return &domain.Restaurant{
		ID:      restaurantID,
		Name:    row.Name,
		Address: row.Address,
		Open:    row.Open,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}

// SaveDish upserts a dish
func (r *PostgresRestaurantRepository) SaveDish(ctx context.Context, dish *domain.Dish) error {
	query := `
		INSERT INTO dishes (id, restaurant_id, name, description, price_amount, price_currency, available, created_at, updated_at)
		VALUES (:id, :restaurant_id, :name, :description, :price_amount, :price_currency, :available, :created_at, :updated_at)
		ON CONFLICT (id) DO UPDATE
		SET name = :name, description = :description, price_amount = :price_amount,
			price_currency = :price_currency, available = :available, updated_at = :updated_at`

	row := postgresDish{
		ID:            dish.ID.String(),
		RestaurantID:  dish.RestaurantID.String(),
		Name:          dish.Name,
		Description:   dish.Description,
		PriceAmount:   dish.Price.Amount,
		PriceCurrency: dish.Price.Currency,
		Available:     dish.Available,
		CreatedAt:     dish.Timestamps.CreatedAt,
		UpdatedAt:     dish.Timestamps.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return errors.Wrap(err, "failed to save dish")
	}
	return nil
}

// FindDishByID finds a dish by ID
func (r *PostgresRestaurantRepository) FindDishByID(ctx context.Context, id models.ID) (*domain.Dish, error) {
	query := `
		SELECT id, restaurant_id, name, description, price_amount, price_currency, available, created_at, updated_at
		FROM dishes
		WHERE id = $1`

	var row postgresDish
	err := r.db.GetContext(ctx, &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find dish")
	}
	return r.toDomainDish(&row)
}

// FindDishesByRestaurant lists a restaurant's dishes
func (r *PostgresRestaurantRepository) FindDishesByRestaurant(ctx context.Context, restaurantID models.ID) ([]*domain.Dish, error) {
	query := `
		SELECT id, restaurant_id, name, description, price_amount, price_currency, available, created_at, updated_at
		FROM dishes
		WHERE restaurant_id = $1
		ORDER BY created_at`

	var rows []postgresDish
	if err := r.db.SelectContext(ctx, &rows, query, restaurantID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find dishes")
	}

	dishes := make([]*domain.Dish, 0, len(rows))
	for i := range rows {
		dish, err := r.toDomainDish(&rows[i])
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, nil
}

func (r *PostgresRestaurantRepository) toDomainDish(row *postgresDish) (*domain.Dish, error) {
	dishID, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dish ID")
	}
	restaurantID, err := models.NewID(row.RestaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}
	return &domain.Dish{
		ID:           dishID,
		RestaurantID: restaurantID,
		Name:         row.Name,
		Description:  row.Description,
		Price:        models.NewMoney(row.PriceAmount, row.PriceCurrency),
		Available:    row.Available,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}
