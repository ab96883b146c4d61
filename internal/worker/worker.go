package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// StockAlertWorker consumes confirmed-order events and raises an alert when
// a referenced product's remaining stock drops below the threshold.
type StockAlertWorker struct {
	consumer  *broker.Consumer
	inventory *store.Inventory
	threshold int
	logger    *zap.Logger
}

// NewStockAlertWorker creates a new stock alert worker
func NewStockAlertWorker(consumer *broker.Consumer, inventory *store.Inventory, threshold int) *StockAlertWorker {
	return &StockAlertWorker{
		consumer:  consumer,
		inventory: inventory,
		threshold: threshold,
		logger:    util.GetLogger(),
	}
}

// Start starts the worker
func (w *StockAlertWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting stock alert worker", zap.Int("threshold", w.threshold))
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *StockAlertWorker) Stop() error {
	w.logger.Info("Stopping stock alert worker")
	return w.consumer.Close()
}

func (w *StockAlertWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	if baseEvent.EventType != models.EventTypeOrderConfirmed {
		return nil
	}

	var event models.OrderConfirmedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal OrderConfirmed event: %w", err)
	}

	for _, item := range event.Items {
		product, err := w.inventory.Get(item.ProductID)
		if err != nil {
			continue
		}

		if product.Stock < w.threshold {
			util.LowStockAlertsTotal.WithLabelValues(product.ID).Inc()
			w.logger.Warn("Low stock after order",
				zap.String("product_id", product.ID),
				zap.Int64("order_id", event.OrderID),
				zap.Int("stock", product.Stock),
				zap.Int("threshold", w.threshold))
		}
	}

	return nil
}
