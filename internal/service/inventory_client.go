package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/util"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// InventoryClient talks to the inventory service over HTTP. Calls carry the
// configured timeout; expiry and connection failures surface as service
// unavailable, never as a business failure.
type InventoryClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewInventoryClient creates a client for the inventory service.
func NewInventoryClient(baseURL string, timeout time.Duration) *InventoryClient {
	return &InventoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: util.GetLogger(),
	}
}

// GetProduct fetches the current snapshot of a product. Any non-OK reply is
// reported as product not found, matching the orchestrator's contract.
func (c *InventoryClient) GetProduct(ctx context.Context, productID string) (*models.ProductResponse, error) {
	ctx, span := util.StartSpan(ctx, "InventoryClient.GetProduct")
	defer span.End()

	url := fmt.Sprintf("%s/api/inventory/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Error communicating with inventory service", zap.Error(err))
		return nil, errUpstreamUnavailable("inventory", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Product not found in inventory", zap.String("product_id", productID))
		return nil, errProductNotFound(productID)
	}

	var product models.ProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		c.logger.Error("Failed to decode inventory response", zap.Error(err))
		return nil, errMalformedResponse("inventory")
	}

	return &product, nil
}

// Reserve performs the conditional stock decrement for one line item.
func (c *InventoryClient) Reserve(ctx context.Context, productID string, quantity int) (*models.ReserveResponse, error) {
	ctx, span := util.StartSpan(ctx, "InventoryClient.Reserve")
	defer span.End()

	start := time.Now()
	defer func() {
		util.InventoryReserveLatency.Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf("%s/api/inventory/%s/reserve?quantity=%d", c.baseURL, productID, quantity)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reserve request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Error communicating with inventory service", zap.Error(err))
		return nil, errUpstreamUnavailable("inventory", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Failed to reserve inventory",
			zap.String("product_id", productID),
			zap.Int("status", resp.StatusCode))
		return nil, errReservationFailed(productID)
	}

	var result models.ReserveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("Failed to decode reserve response", zap.Error(err))
		return nil, errMalformedResponse("inventory")
	}

	return &result, nil
}
