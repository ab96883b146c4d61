package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// InventoryHandler serves the inventory service HTTP API.
type InventoryHandler struct {
	inventory *store.Inventory
	logger    *zap.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory *store.Inventory) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *InventoryHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("inventory-api"))
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.root)
	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/inventory", h.listInventory)
		api.GET("/inventory/:id", h.getProduct)
		api.POST("/inventory/:id/reserve", h.reserveStock)
	}
}

func (h *InventoryHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":   "Inventory API",
		"version":   "1.0.0",
		"status":    "running",
		"endpoints": []string{"/health", "/api/inventory", "/api/inventory/{product_id}"},
	})
}

func (h *InventoryHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "inventory-api",
	})
}

func (h *InventoryHandler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listInventory returns all inventory items keyed by product id.
func (h *InventoryHandler) listInventory(c *gin.Context) {
	_, span := util.StartSpan(c.Request.Context(), "InventoryHandler.ListInventory")
	defer span.End()

	products := h.inventory.List()
	items := make(map[string]models.InventoryItem, len(products))
	for _, p := range products {
		items[p.ID] = models.InventoryItem{Name: p.Name, Stock: p.Stock, Price: p.Price}
	}

	util.InventoryChecksTotal.WithLabelValues("list_all").Inc()
	h.logger.Info("Retrieved all inventory items", zap.Int("count", len(items)))

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_items": len(items),
	})
}

// getProduct returns the current snapshot for one product.
func (h *InventoryHandler) getProduct(c *gin.Context) {
	_, span := util.StartSpan(c.Request.Context(), "InventoryHandler.GetProduct")
	defer span.End()

	productID := c.Param("id")
	util.InventoryChecksTotal.WithLabelValues("get_by_id").Inc()

	product, err := h.inventory.Get(productID)
	if err != nil {
		h.logger.Warn("Product not found", zap.String("product_id", productID))
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		return
	}

	util.StockLevel.WithLabelValues(productID).Set(float64(product.Stock))
	h.logger.Info("Retrieved inventory",
		zap.String("product_id", productID),
		zap.Int("stock", product.Stock))

	c.JSON(http.StatusOK, models.ProductResponse{
		ProductID: product.ID,
		Name:      product.Name,
		Stock:     product.Stock,
		Price:     product.Price,
		Available: product.Stock > 0,
	})
}

// reserveStock performs the conditional decrement. Quantity defaults to 1
// and must be a positive integer.
func (h *InventoryHandler) reserveStock(c *gin.Context) {
	_, span := util.StartSpan(c.Request.Context(), "InventoryHandler.ReserveStock")
	defer span.End()

	productID := c.Param("id")

	quantity, err := strconv.Atoi(c.DefaultQuery("quantity", "1"))
	if err != nil || quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Quantity must be a positive integer"})
		return
	}

	remaining, err := h.inventory.Reserve(productID, quantity)
	if err != nil {
		var notFound *store.ProductNotFoundError
		if errors.As(err, &notFound) {
			h.logger.Warn("Cannot reserve, product not found", zap.String("product_id", productID))
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			return
		}

		var insufficient *store.InsufficientStockError
		if errors.As(err, &insufficient) {
			h.logger.Warn("Insufficient stock",
				zap.String("product_id", productID),
				zap.Int("requested", insufficient.Requested),
				zap.Int("available", insufficient.Available))
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	util.InventoryChecksTotal.WithLabelValues("reserve").Inc()
	util.StockLevel.WithLabelValues(productID).Set(float64(remaining))
	h.logger.Info("Reserved stock",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("remaining_stock", remaining))

	c.JSON(http.StatusOK, models.ReserveResponse{
		Success:          true,
		ProductID:        productID,
		ReservedQuantity: quantity,
		RemainingStock:   remaining,
	})
}
