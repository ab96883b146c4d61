package store

import (
	"errors"
	"sync"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededInventory() *Inventory {
	inv := NewInventory()
	inv.Seed(DefaultCatalog())
	return inv
}

func TestReserveDecrementsStock(t *testing.T) {
	inv := newSeededInventory()

	remaining, err := inv.Reserve("laptop", 5)
	require.NoError(t, err)
	assert.Equal(t, 20, remaining)

	product, err := inv.Get("laptop")
	require.NoError(t, err)
	assert.Equal(t, 20, product.Stock)
}

func TestReserveInsufficientStockLeavesStockUnchanged(t *testing.T) {
	inv := newSeededInventory()

	_, err := inv.Reserve("laptop", 5)
	require.NoError(t, err)

	_, err = inv.Reserve("laptop", 30)
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 20, insufficient.Available)
	assert.Equal(t, 30, insufficient.Requested)

	product, err := inv.Get("laptop")
	require.NoError(t, err)
	assert.Equal(t, 20, product.Stock)
}

func TestReserveUnknownProduct(t *testing.T) {
	inv := newSeededInventory()

	_, err := inv.Reserve("toaster", 1)
	require.Error(t, err)

	var notFound *ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "toaster", notFound.ProductID)
}

func TestReserveExactStock(t *testing.T) {
	inv := NewInventory()
	inv.Seed([]models.Product{{ID: "widget", Name: "Widget", Stock: 3, Price: 1.50}})

	remaining, err := inv.Reserve("widget", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = inv.Reserve("widget", 1)
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, insufficient.Available)
}

func TestGetUnknownProduct(t *testing.T) {
	inv := newSeededInventory()

	_, err := inv.Get("toaster")
	require.Error(t, err)

	var notFound *ProductNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestListIsSortedSnapshot(t *testing.T) {
	inv := newSeededInventory()

	products := inv.List()
	require.Len(t, products, 5)
	assert.Equal(t, "headset", products[0].ID)
	assert.Equal(t, "mouse", products[3].ID)

	// Mutating a returned snapshot must not touch the store.
	products[0].Stock = 0
	p, err := inv.Get("headset")
	require.NoError(t, err)
	assert.Equal(t, 60, p.Stock)
}

// Concurrent unit reservations against stock K must grant exactly K and
// never drive stock negative, regardless of interleaving.
func TestConcurrentReserveNeverOversells(t *testing.T) {
	const stock = 30
	const workers = 100

	inv := NewInventory()
	inv.Seed([]models.Product{{ID: "widget", Name: "Widget", Stock: stock, Price: 9.99}})

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := inv.Reserve("widget", 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	granted, denied := 0, 0
	for err := range results {
		if err == nil {
			granted++
			continue
		}
		var insufficient *InsufficientStockError
		require.True(t, errors.As(err, &insufficient))
		denied++
	}

	assert.Equal(t, stock, granted)
	assert.Equal(t, workers-stock, denied)

	product, err := inv.Get("widget")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
}
