package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// HTTPCatalogGateway resolves dishes against the restaurant service REST API
type HTTPCatalogGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCatalogGateway creates a new HTTPCatalogGateway
func NewHTTPCatalogGateway(baseURL string, client *http.Client) *HTTPCatalogGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPCatalogGateway{baseURL: baseURL, client: client}
}

// GetDish fetches a dish by id. A 404 maps to ErrDishNotFound so the caller
// can tell a missing dish from a broken catalog.
func (g *HTTPCatalogGateway) GetDish(ctx context.Context, dishID models.ID) (*domain.Dish, error) {
	url := fmt.Sprintf("%s/dishes/%s", g.baseURL, dishID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build dish request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call restaurant service")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errors.Wrapf(domain.ErrDishNotFound, "dish %s", dishID)
	default:
		return nil, errors.Errorf("restaurant service returned status %d", resp.StatusCode)
	}

	var dish domain.Dish
	if err := json.NewDecoder(resp.Body).Decode(&dish); err != nil {
		return nil, errors.Wrap(err, "failed to decode dish response")
	}
	return &dish, nil
}
