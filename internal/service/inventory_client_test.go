package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProductMapsNonOKToNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Product toaster not found"})
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, time.Second)
	_, err := client.GetProduct(context.Background(), "toaster")
	require.Error(t, err)

	we, ok := err.(*WorkflowError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, we.Status)
	assert.Contains(t, we.Detail, "toaster")
}

func TestGetProductMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, time.Second)
	_, err := client.GetProduct(context.Background(), "mouse")
	require.Error(t, err)

	we, ok := err.(*WorkflowError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, we.Status)
}

func TestGetProductServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewInventoryClient(server.URL, time.Second)
	_, err := client.GetProduct(context.Background(), "mouse")
	require.Error(t, err)

	we, ok := err.(*WorkflowError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, we.Status)
}

func TestGetProductTimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, 50*time.Millisecond)
	_, err := client.GetProduct(context.Background(), "mouse")
	require.Error(t, err)

	we, ok := err.(*WorkflowError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, we.Status)
}

func TestReserveFailureIsReservationFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Insufficient stock"})
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, time.Second)
	_, err := client.Reserve(context.Background(), "mouse", 2)
	require.Error(t, err)

	we, ok := err.(*WorkflowError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, we.Status)
	assert.Contains(t, we.Detail, "mouse")
}

func TestReserveSendsQuantityParam(t *testing.T) {
	var gotQuantity string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuantity = r.URL.Query().Get("quantity")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true, "product_id": "mouse", "reserved_quantity": 3, "remaining_stock": 147,
		})
	}))
	defer server.Close()

	client := NewInventoryClient(server.URL, time.Second)
	result, err := client.Reserve(context.Background(), "mouse", 3)
	require.NoError(t, err)

	assert.Equal(t, "3", gotQuantity)
	assert.True(t, result.Success)
	assert.Equal(t, 147, result.RemainingStock)
}
