package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// HTTPDeliveryGateway starts deliveries through the delivery service REST API
type HTTPDeliveryGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPDeliveryGateway creates a new HTTPDeliveryGateway
func NewHTTPDeliveryGateway(baseURL string, client *http.Client) *HTTPDeliveryGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPDeliveryGateway{baseURL: baseURL, client: client}
}

// Initiate asks the delivery service to start delivering an order. Success
// means accepted; the outcome arrives later as a delivery status event.
func (g *HTTPDeliveryGateway) Initiate(ctx context.Context, delReq domain.DeliveryRequest) error {
	body, err := json.Marshal(delReq)
	if err != nil {
		return errors.Wrap(err, "failed to encode delivery request")
	}

	url := fmt.Sprintf("%s/deliveries", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build delivery request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call delivery service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("delivery service returned status %d", resp.StatusCode)
	}
	return nil
}

// GetDeliveryByOrder fetches the delivery recorded for an order
func (g *HTTPDeliveryGateway) GetDeliveryByOrder(ctx context.Context, orderID models.ID) (*domain.DeliveryDetails, error) {
	url := fmt.Sprintf("%s/deliveries/order/%s", g.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build delivery lookup request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call delivery service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("delivery service returned status %d", resp.StatusCode)
	}

	var details domain.DeliveryDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, errors.Wrap(err, "failed to decode delivery response")
	}
	return &details, nil
}
