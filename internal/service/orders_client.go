package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/util"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// UpstreamReply is a relayed reply from the orders service: the upstream
// status plus either the verbatim JSON body or an extracted detail message.
type UpstreamReply struct {
	Status int
	Body   json.RawMessage
}

// OrdersClient relays storefront requests to the orders service without
// adding business logic. Successful replies pass through verbatim; error
// replies keep the upstream status with the upstream detail.
type OrdersClient struct {
	baseURL      string
	client       *http.Client
	createClient *http.Client
	logger       *zap.Logger
}

// NewOrdersClient creates a client for the orders service. Order creation
// uses the longer timeout since it spans one inventory round trip per item.
func NewOrdersClient(baseURL string, timeout, createTimeout time.Duration) *OrdersClient {
	transport := otelhttp.NewTransport(http.DefaultTransport)
	return &OrdersClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: timeout, Transport: transport},
		createClient: &http.Client{Timeout: createTimeout, Transport: transport},
		logger:       util.GetLogger(),
	}
}

// ListOrders relays a get-all-orders request.
func (c *OrdersClient) ListOrders(ctx context.Context) (*UpstreamReply, error) {
	return c.relay(ctx, c.client, http.MethodGet, "/api/orders", nil)
}

// GetOrder relays a get-order-by-id request.
func (c *OrdersClient) GetOrder(ctx context.Context, orderID int64) (*UpstreamReply, error) {
	return c.relay(ctx, c.client, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
}

// CreateOrder relays an order creation request with the body unchanged.
func (c *OrdersClient) CreateOrder(ctx context.Context, body []byte) (*UpstreamReply, error) {
	return c.relay(ctx, c.createClient, http.MethodPost, "/api/orders", body)
}

func (c *OrdersClient) relay(ctx context.Context, client *http.Client, method, path string, body []byte) (*UpstreamReply, error) {
	ctx, span := util.StartSpan(ctx, "OrdersClient.Relay")
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build orders request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		c.logger.Error("Error communicating with orders service",
			zap.String("url", c.baseURL+path),
			zap.Error(err))
		return nil, errUpstreamUnavailable("orders", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errUpstreamUnavailable("orders", err)
	}

	if resp.StatusCode == http.StatusOK {
		if !json.Valid(raw) {
			c.logger.Error("Orders service returned a non-JSON body",
				zap.Int("status", resp.StatusCode))
			return nil, errMalformedResponse("orders")
		}
		return &UpstreamReply{Status: resp.StatusCode, Body: raw}, nil
	}

	detail := extractDetail(raw, resp.StatusCode)
	c.logger.Warn("Orders service returned an error",
		zap.Int("status", resp.StatusCode),
		zap.String("detail", detail))

	envelope, _ := json.Marshal(map[string]string{"detail": detail})
	return &UpstreamReply{Status: resp.StatusCode, Body: envelope}, nil
}

// extractDetail pulls the detail string out of an upstream error envelope,
// falling back to the raw body text.
func extractDetail(raw []byte, status int) string {
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
