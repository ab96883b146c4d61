package models

import "time"

// Product is an inventory record. Stock is mutated only through the
// inventory store's Reserve operation.
type Product struct {
	ID    string  `json:"product_id"`
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// InventoryItem is the per-product payload in the inventory listing.
type InventoryItem struct {
	Name  string  `json:"name"`
	Stock int     `json:"stock"`
	Price float64 `json:"price"`
}

// ProductResponse is the payload for a single product lookup.
type ProductResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// ReserveResponse is the payload for a successful stock reservation.
type ReserveResponse struct {
	Success          bool   `json:"success"`
	ProductID        string `json:"product_id"`
	ReservedQuantity int    `json:"reserved_quantity"`
	RemainingStock   int    `json:"remaining_stock"`
}

// OrderLineItem is a priced line within a persisted order. Name and unit
// price are snapshots taken at reservation time; later catalog changes do
// not affect existing orders.
type OrderLineItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// Order is a confirmed customer order. Orders are created by a successful
// order workflow run and never mutated or deleted afterwards.
type Order struct {
	OrderID    int64           `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Items      []OrderLineItem `json:"items"`
	TotalValue float64         `json:"total_value"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderStatusConfirmed is the only status an order ever carries.
const OrderStatusConfirmed = "confirmed"

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderItemRequest represents an item in an order
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}
