package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/fooddelivery/order-system/payment-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

type postgresPayment struct {
	ID        string    `db:"id"`
	OrderID   string    `db:"order_id"`
	Amount    int64     `db:"amount"`
	Currency  string    `db:"currency"`
	Mode      string    `db:"payment_mode"`
	Status    string    `db:"status"`
	PayedOn   time.Time `db:"payed_on"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Save inserts a payment record. Payments are immutable outcomes, so there
// is no update path.
func (r *PostgresPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount, currency, payment_mode, status, payed_on, created_at, updated_at)
		VALUES (:id, :order_id, :amount, :currency, :payment_mode, :status, :payed_on, :created_at, :updated_at)`

	row := postgresPayment{
		ID:        payment.ID.String(),
		OrderID:   payment.OrderID.String(),
		Amount:    payment.Amount.Amount,
		Currency:  payment.Amount.Currency,
		Mode:      string(payment.Mode),
		Status:    string(payment.Status),
		PayedOn:   payment.PayedOn,
		CreatedAt: payment.Timestamps.CreatedAt,
		UpdatedAt: payment.Timestamps.UpdatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return errors.Wrap(err, "failed to insert payment")
	}
	return nil
}

// FindByOrderID finds the latest payment for an order
func (r *PostgresPaymentRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, amount, currency, payment_mode, status, payed_on, created_at, updated_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var row postgresPayment
	err := r.db.GetContext(ctx, &row, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID")
	}
	oid, err := models.NewID(row.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}

	return &domain.Payment{
		ID:      id,
		OrderID: oid,
		Amount:  models.NewMoney(row.Amount, row.Currency),
		Mode:    domain.PaymentMode(row.Mode),
		Status:  domain.PaymentStatus(row.Status),
		PayedOn: row.PayedOn,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}
