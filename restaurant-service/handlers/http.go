package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fooddelivery/order-system/restaurant-service/application"
	"github.com/fooddelivery/order-system/restaurant-service/domain"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// RestaurantHandlers contains catalog HTTP handlers
type RestaurantHandlers struct {
	createRestaurant    *application.CreateRestaurant
	getRestaurant       *application.GetRestaurant
	addDish             *application.AddDish
	getDish             *application.GetDish
	setDishAvailability *application.SetDishAvailability
}

// NewRestaurantHandlers creates new restaurant handlers
func NewRestaurantHandlers(
	createRestaurant *application.CreateRestaurant,
	getRestaurant *application.GetRestaurant,
	addDish *application.AddDish,
	getDish *application.GetDish,
	setDishAvailability *application.SetDishAvailability,
) *RestaurantHandlers {
	return &RestaurantHandlers{
		createRestaurant:    createRestaurant,
		getRestaurant:       getRestaurant,
		addDish:             addDish,
		getDish:             getDish,
		setDishAvailability: setDishAvailability,
	}
}

// CreateRestaurant handles restaurant registration requests
func (h *RestaurantHandlers) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	var cmd application.CreateRestaurantCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.createRestaurant.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetRestaurant handles restaurant lookup requests
func (h *RestaurantHandlers) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		http.Error(w, "Restaurant ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getRestaurant.Execute(r.Context(), &application.GetRestaurantQuery{
		RestaurantID: restaurantID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// AddDish handles dish creation requests
func (h *RestaurantHandlers) AddDish(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "id")
	if restaurantID == "" {
		http.Error(w, "Restaurant ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.AddDishCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.RestaurantID = restaurantID

	response, err := h.addDish.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetDish handles dish lookup requests from the order saga
func (h *RestaurantHandlers) GetDish(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "id")
	if dishID == "" {
		http.Error(w, "Dish ID is required", http.StatusBadRequest)
		return
	}

	response, err := h.getDish.Execute(r.Context(), &application.GetDishQuery{DishID: dishID})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SetDishAvailability handles availability updates
func (h *RestaurantHandlers) SetDishAvailability(w http.ResponseWriter, r *http.Request) {
	dishID := chi.URLParam(r, "id")
	if dishID == "" {
		http.Error(w, "Dish ID is required", http.StatusBadRequest)
		return
	}

	var cmd application.SetDishAvailabilityCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.DishID = dishID

	if err := h.setDishAvailability.Execute(r.Context(), &cmd); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers catalog routes
func (h *RestaurantHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/restaurants", func(r chi.Router) {
		r.Post("/", h.CreateRestaurant)
		r.Get("/{id}", h.GetRestaurant)
		r.Post("/{id}/dishes", h.AddDish)
	})
	r.Route("/dishes", func(r chi.Router) {
		r.Get("/{id}", h.GetDish)
		r.Patch("/{id}/availability", h.SetDishAvailability)
	})
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRestaurantNotFound), errors.Is(err, domain.ErrDishNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
