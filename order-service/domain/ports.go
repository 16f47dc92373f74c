package domain

import (
	"context"
	"time"

	"github.com/fooddelivery/order-system/shared/models"
)

// OrderRepository persists order aggregates. Save inspects the recorded
// events: a placed order is inserted, everything else is an update guarded by
// a compare-and-set on the previous version. A stale write returns
// ErrVersionConflict and must never overwrite a newer status.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id models.ID) (*Order, error)
}

// Dish is the catalog view of a dish as resolved at order time
type Dish struct {
	ID           models.ID    `json:"dish_id"`
	RestaurantID models.ID    `json:"restaurant_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        models.Money `json:"price"`
	Available    bool         `json:"available"`
}

// CatalogGateway resolves dish price and availability. GetDish returns
// ErrDishNotFound when the catalog does not know the dish.
type CatalogGateway interface {
	GetDish(ctx context.Context, dishID models.ID) (*Dish, error)
}

// PaymentRequest is the charge request sent to the payment collaborator
type PaymentRequest struct {
	OrderID models.ID    `json:"order_id"`
	Amount  models.Money `json:"amount"`
	Mode    string       `json:"payment_mode"`
}

// PaymentDetails is the payment view used by the denormalized order read
type PaymentDetails struct {
	PaymentID models.ID `json:"payment_id"`
	OrderID   models.ID `json:"order_id"`
	Mode      string    `json:"payment_mode"`
	Status    string    `json:"status"`
	PayedOn   time.Time `json:"payed_on"`
}

// PaymentGateway charges orders. A non-nil error from Pay covers both
// declines and transport failures; the saga treats either as a compensating
// outcome, not an abort.
type PaymentGateway interface {
	Pay(ctx context.Context, req PaymentRequest) error
	GetPaymentByOrder(ctx context.Context, orderID models.ID) (*PaymentDetails, error)
}

// DeliveryRequest carries only pickup/dropoff identity; delivery does not
// need the order's items
type DeliveryRequest struct {
	OrderID      models.ID `json:"order_id"`
	RestaurantID models.ID `json:"restaurant_id"`
	UserID       models.ID `json:"user_id"`
}

// DeliveryDetails is the delivery view used by the denormalized order read
type DeliveryDetails struct {
	DeliveryID  models.ID  `json:"delivery_id"`
	OrderID     models.ID  `json:"order_id"`
	Status      string     `json:"status"`
	InitiatedAt time.Time  `json:"initiated_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// DeliveryGateway begins physical delivery asynchronously elsewhere. Initiate
// returning nil means the request was accepted, not that delivery completed.
type DeliveryGateway interface {
	Initiate(ctx context.Context, req DeliveryRequest) error
	GetDeliveryByOrder(ctx context.Context, orderID models.ID) (*DeliveryDetails, error)
}
