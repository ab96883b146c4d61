package broker

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// EventPublisher handles publishing domain events. A nil publisher is valid
// and drops every event, which is how services run without Kafka configured.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderConfirmed publishes an OrderConfirmed event for a persisted order.
func (ep *EventPublisher) PublishOrderConfirmed(ctx context.Context, order *models.Order) error {
	if ep == nil || ep.producer == nil {
		return nil
	}

	items := make([]models.EventLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.EventLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	event := &models.OrderConfirmedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderConfirmed,
			Timestamp: time.Now(),
		},
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		TotalValue: order.TotalValue,
		Items:      items,
	}

	key := fmt.Sprintf("order-%d", order.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}
