package store

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/models"
)

// ProductNotFoundError indicates an unknown product id.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product %s not found", e.ProductID)
}

// InsufficientStockError indicates a reservation larger than the available
// stock. Available reports the stock at the time of the failed attempt.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", e.Available, e.Requested)
}

// Inventory is the in-memory product table. It is created at process start
// and seeded once; all stock mutation goes through Reserve, which serializes
// the check-and-decrement under the store mutex so stock never goes negative
// under concurrent reservations.
type Inventory struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

// NewInventory creates an empty inventory store.
func NewInventory() *Inventory {
	return &Inventory{
		products: make(map[string]*models.Product),
	}
}

// DefaultCatalog returns the catalog the inventory service seeds at startup.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{ID: "laptop", Name: "Laptop Pro", Stock: 25, Price: 1299.99},
		{ID: "mouse", Name: "Wireless Mouse", Stock: 150, Price: 29.99},
		{ID: "keyboard", Name: "Mechanical Keyboard", Stock: 75, Price: 89.99},
		{ID: "monitor", Name: "4K Monitor", Stock: 40, Price: 449.99},
		{ID: "headset", Name: "Gaming Headset", Stock: 60, Price: 79.99},
	}
}

// Seed loads products into the store, replacing any existing entries with
// the same id.
func (inv *Inventory) Seed(products []models.Product) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for i := range products {
		p := products[i]
		inv.products[p.ID] = &p
	}
}

// Get returns a snapshot of the product. It has no side effects.
func (inv *Inventory) Get(productID string) (models.Product, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	p, ok := inv.products[productID]
	if !ok {
		return models.Product{}, &ProductNotFoundError{ProductID: productID}
	}
	return *p, nil
}

// List returns snapshots of all products ordered by id.
func (inv *Inventory) List() []models.Product {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	products := make([]models.Product, 0, len(inv.products))
	for _, p := range inv.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// Reserve atomically checks and decrements stock for a product. On success
// it returns the remaining stock. On failure stock is left unchanged:
// unknown ids fail with ProductNotFoundError and oversized requests fail
// with InsufficientStockError carrying the available amount.
func (inv *Inventory) Reserve(productID string, quantity int) (int, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	p, ok := inv.products[productID]
	if !ok {
		return 0, &ProductNotFoundError{ProductID: productID}
	}

	if p.Stock < quantity {
		return 0, &InsufficientStockError{
			ProductID: productID,
			Available: p.Stock,
			Requested: quantity,
		}
	}

	p.Stock -= quantity
	return p.Stock, nil
}
