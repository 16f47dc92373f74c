package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fooddelivery/order-system/order-service/domain"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/pkg/errors"
)

// HTTPPaymentGateway charges orders through the payment service REST API
type HTTPPaymentGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPaymentGateway creates a new HTTPPaymentGateway
func NewHTTPPaymentGateway(baseURL string, client *http.Client) *HTTPPaymentGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPaymentGateway{baseURL: baseURL, client: client}
}

// Pay charges an order. Any non-2xx answer is a payment failure; the saga
// compensates, so there is no need to distinguish declines from outages here.
func (g *HTTPPaymentGateway) Pay(ctx context.Context, payReq domain.PaymentRequest) error {
	body, err := json.Marshal(payReq)
	if err != nil {
		return errors.Wrap(err, "failed to encode payment request")
	}

	url := fmt.Sprintf("%s/payments", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build payment request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call payment service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("payment service returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// GetPaymentByOrder fetches the payment recorded for an order
func (g *HTTPPaymentGateway) GetPaymentByOrder(ctx context.Context, orderID models.ID) (*domain.PaymentDetails, error) {
	url := fmt.Sprintf("%s/payments/order/%s", g.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build payment lookup request")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call payment service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("payment service returned status %d", resp.StatusCode)
	}

	var details domain.PaymentDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, errors.Wrap(err, "failed to decode payment response")
	}
	return &details, nil
}
