package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fooddelivery/order-system/delivery-service/application"
	"github.com/fooddelivery/order-system/delivery-service/domain"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// DeliveryHandlers contains delivery HTTP handlers
type DeliveryHandlers struct {
	initiateDelivery   *application.InitiateDelivery
	getDeliveryByOrder *application.GetDeliveryByOrder
	cancelDelivery     *application.CancelDelivery
}

// NewDeliveryHandlers creates new delivery handlers
func NewDeliveryHandlers(
	initiateDelivery *application.InitiateDelivery,
	getDeliveryByOrder *application.GetDeliveryByOrder,
	cancelDelivery *application.CancelDelivery,
) *DeliveryHandlers {
	return &DeliveryHandlers{
		initiateDelivery:   initiateDelivery,
		getDeliveryByOrder: getDeliveryByOrder,
		cancelDelivery:     cancelDelivery,
	}
}

// InitiateDelivery handles delivery requests. The outcome arrives later as a
// delivery.status.updated event, so the response only acknowledges dispatch.
func (h *DeliveryHandlers) InitiateDelivery(w http.ResponseWriter, r *http.Request) {
	var cmd application.InitiateDeliveryCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.initiateDelivery.Execute(r.Context(), &cmd)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(response)
}

// GetDeliveryByOrder handles delivery lookups by order
func (h *DeliveryHandlers) GetDeliveryByOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getDeliveryByOrder.Execute(r.Context(), &application.GetDeliveryByOrderQuery{
		OrderID: orderID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDeliveryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// CancelDelivery aborts an in-flight delivery
func (h *DeliveryHandlers) CancelDelivery(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		http.Error(w, "Order ID is required", http.StatusBadRequest)
		return
	}

	err := h.cancelDelivery.Execute(r.Context(), &application.CancelDeliveryCommand{
		OrderID: orderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDeliveryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, domain.ErrDeliveryFinished):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers delivery routes
func (h *DeliveryHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/deliveries", func(r chi.Router) {
		r.Post("/", h.InitiateDelivery)
		r.Get("/order/{orderId}", h.GetDeliveryByOrder)
		r.Delete("/order/{orderId}", h.CancelDelivery)
	})
}
