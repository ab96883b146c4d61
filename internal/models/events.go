package models

import "time"

// Event types
const (
	EventTypeOrderConfirmed = "ORDER_CONFIRMED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderConfirmedEvent is published after an order workflow completes
// successfully. Publishing is best effort and never blocks the workflow.
type OrderConfirmedEvent struct {
	BaseEvent
	OrderID    int64           `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	TotalValue float64         `json:"total_value"`
	Items      []EventLineItem `json:"items"`
}

// EventLineItem represents item data in events
type EventLineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
