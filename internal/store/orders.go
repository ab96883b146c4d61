package store

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"storefront/internal/models"
)

// OrderNotFoundError indicates an unknown order id.
type OrderNotFoundError struct {
	OrderID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order %d not found", e.OrderID)
}

// Orders is the in-memory order table plus the order id source. Ids are
// assigned from an atomic counter starting at 1000; a failed order workflow
// still consumes its id, so the sequence can have gaps.
type Orders struct {
	mu     sync.RWMutex
	orders map[int64]*models.Order
	nextID atomic.Int64
}

// NewOrders creates an empty order store.
func NewOrders() *Orders {
	s := &Orders{
		orders: make(map[int64]*models.Order),
	}
	s.nextID.Store(1000)
	return s
}

// NextID returns a fresh order id and advances the counter.
func (s *Orders) NextID() int64 {
	return s.nextID.Add(1) - 1
}

// Put persists an order. Orders are never updated or deleted afterwards.
func (s *Orders) Put(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.OrderID] = order
}

// Get returns a snapshot of an order by id.
func (s *Orders) Get(orderID int64) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, &OrderNotFoundError{OrderID: orderID}
	}
	return *order, nil
}

// List returns snapshots of all orders ordered by id.
func (s *Orders) List() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderID < orders[j].OrderID })
	return orders
}

// Count returns the number of persisted orders.
func (s *Orders) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.orders)
}
