package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fooddelivery/order-system/payment-service/application"
	"github.com/fooddelivery/order-system/payment-service/domain"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// PaymentHandlers contains payment HTTP handlers
type PaymentHandlers struct {
	createPayment     *application.CreatePayment
	getPaymentByOrder *application.GetPaymentByOrder
}

// NewPaymentHandlers creates new payment handlers
func NewPaymentHandlers(
	createPayment *application.CreatePayment,
	getPaymentByOrder *application.GetPaymentByOrder,
) *PaymentHandlers {
	return &PaymentHandlers{
		createPayment:     createPayment,
		getPaymentByOrder: getPaymentByOrder,
	}
}

// CreatePayment handles charge requests
func (h *PaymentHandlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreatePaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createPayment.Execute(r.Context(), &cmd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidMode), errors.Is(err, domain.ErrNonPositiveAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			// Declines land here too; the order saga compensates.
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetPaymentByOrder handles payment lookups by order
func (h *PaymentHandlers) GetPaymentByOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getPaymentByOrder.Execute(r.Context(), &application.GetPaymentByOrderQuery{
		OrderID: orderID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// RegisterRoutes registers payment routes
func (h *PaymentHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.CreatePayment)
		r.Get("/order/{orderId}", h.GetPaymentByOrder)
	})
}
