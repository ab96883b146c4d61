package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/store"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderConfirmedMessage(t *testing.T, items ...models.EventLineItem) kafka.Message {
	t.Helper()

	event := models.OrderConfirmedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeOrderConfirmed,
			Timestamp: time.Now(),
		},
		OrderID:    1000,
		CustomerID: "c1",
		Items:      items,
	}
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Key: []byte("order-1000"), Value: raw}
}

func TestHandleMessageLowStock(t *testing.T) {
	inventory := store.NewInventory()
	inventory.Seed([]models.Product{{ID: "laptop", Name: "Laptop Pro", Stock: 3, Price: 1299.99}})

	w := NewStockAlertWorker(nil, inventory, 10)

	msg := orderConfirmedMessage(t, models.EventLineItem{ProductID: "laptop", Quantity: 1, UnitPrice: 1299.99})
	assert.NoError(t, w.handleMessage(context.Background(), msg))
}

func TestHandleMessageIgnoresUnknownProducts(t *testing.T) {
	w := NewStockAlertWorker(nil, store.NewInventory(), 10)

	msg := orderConfirmedMessage(t, models.EventLineItem{ProductID: "toaster", Quantity: 1})
	assert.NoError(t, w.handleMessage(context.Background(), msg))
}

func TestHandleMessageIgnoresOtherEventTypes(t *testing.T) {
	w := NewStockAlertWorker(nil, store.NewInventory(), 10)

	raw, _ := json.Marshal(models.BaseEvent{EventID: "evt-2", EventType: "SOMETHING_ELSE"})
	assert.NoError(t, w.handleMessage(context.Background(), kafka.Message{Value: raw}))
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	w := NewStockAlertWorker(nil, store.NewInventory(), 10)

	err := w.handleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
