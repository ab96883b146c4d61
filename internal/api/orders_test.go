package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOrderStack wires a real inventory service behind the orders service,
// both in process.
func newOrderStack(t *testing.T) (*gin.Engine, *store.Inventory, *store.Orders) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	inventory := store.NewInventory()
	inventory.Seed(store.DefaultCatalog())

	inventoryRouter := gin.New()
	NewInventoryHandler(inventory).SetupRoutes(inventoryRouter)
	upstream := httptest.NewServer(inventoryRouter)
	t.Cleanup(upstream.Close)

	orders := store.NewOrders()
	client := service.NewInventoryClient(upstream.URL, 5*time.Second)
	orderService := service.NewOrderService(orders, client, nil)

	router := gin.New()
	NewOrdersHandler(orderService, upstream.URL).SetupRoutes(router)
	return router, inventory, orders
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndToEnd(t *testing.T) {
	router, inventory, _ := newOrderStack(t)

	w := postJSON(router, "/api/orders", `{
		"customer_id": "c1",
		"items": [
			{"product_id": "mouse", "quantity": 2},
			{"product_id": "keyboard", "quantity": 1}
		]
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	assert.Equal(t, int64(1000), order.OrderID)
	assert.Equal(t, "confirmed", order.Status)
	assert.InDelta(t, 149.97, order.TotalValue, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Wireless Mouse", order.Items[0].ProductName)

	mouse, _ := inventory.Get("mouse")
	keyboard, _ := inventory.Get("keyboard")
	assert.Equal(t, 148, mouse.Stock)
	assert.Equal(t, 74, keyboard.Stock)

	// Round trip through the HTTP surface.
	got := doRequest(router, http.MethodGet, "/api/orders/1000")
	require.Equal(t, http.StatusOK, got.Code)

	var fetched models.Order
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &fetched))
	assert.Equal(t, order, fetched)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	router, inventory, orders := newOrderStack(t)

	w := postJSON(router, "/api/orders", `{
		"customer_id": "c1",
		"items": [
			{"product_id": "mouse", "quantity": 2},
			{"product_id": "toaster", "quantity": 1}
		]
	}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeBody(t, w)["detail"], "toaster")

	// No order was persisted, but the first item's reservation already
	// landed and is not released.
	assert.Equal(t, 0, orders.Count())
	mouse, _ := inventory.Get("mouse")
	assert.Equal(t, 148, mouse.Stock)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	router, _, orders := newOrderStack(t)

	w := postJSON(router, "/api/orders", `{
		"customer_id": "c1",
		"items": [{"product_id": "laptop", "quantity": 100}]
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	detail := decodeBody(t, w)["detail"].(string)
	assert.Contains(t, detail, "Available: 25")
	assert.Contains(t, detail, "Requested: 100")
	assert.Equal(t, 0, orders.Count())
}

func TestCreateOrderInvalidBody(t *testing.T) {
	router, _, _ := newOrderStack(t)

	for _, payload := range []string{
		`{"customer_id": "c1"}`,
		`{"customer_id": "c1", "items": []}`,
		`{"items": [{"product_id": "mouse", "quantity": 1}]}`,
		`{"customer_id": "c1", "items": [{"product_id": "mouse", "quantity": 0}]}`,
		`not json`,
	} {
		w := postJSON(router, "/api/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload=%s", payload)
	}
}

func TestCreateOrderInventoryUnreachable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	orders := store.NewOrders()
	client := service.NewInventoryClient("http://127.0.0.1:1", time.Second)
	orderService := service.NewOrderService(orders, client, nil)

	router := gin.New()
	NewOrdersHandler(orderService, "http://127.0.0.1:1").SetupRoutes(router)

	w := postJSON(router, "/api/orders", `{
		"customer_id": "c1",
		"items": [{"product_id": "mouse", "quantity": 1}]
	}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListOrders(t *testing.T) {
	router, _, _ := newOrderStack(t)

	w := doRequest(router, http.MethodGet, "/api/orders")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["total"])

	postJSON(router, "/api/orders", `{"customer_id": "c1", "items": [{"product_id": "mouse", "quantity": 1}]}`)

	w = doRequest(router, http.MethodGet, "/api/orders")
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	assert.Len(t, body["orders"], 1)
}

func TestGetOrderNotFound(t *testing.T) {
	router, _, _ := newOrderStack(t)

	w := doRequest(router, http.MethodGet, "/api/orders/4242")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decodeBody(t, w)["detail"], "4242")
}

func TestGetOrderInvalidID(t *testing.T) {
	router, _, _ := newOrderStack(t)

	w := doRequest(router, http.MethodGet, "/api/orders/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrdersHealth(t *testing.T) {
	router, _, _ := newOrderStack(t)

	w := doRequest(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "orders-api", decodeBody(t, w)["service"])
}
