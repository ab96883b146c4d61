package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// OrdersHandler serves the order orchestrator HTTP API.
type OrdersHandler struct {
	orderService *service.OrderService
	inventoryURL string
	logger       *zap.Logger
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(orderService *service.OrderService, inventoryURL string) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
		inventoryURL: inventoryURL,
		logger:       util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *OrdersHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("orders-api"))
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.root)
	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/orders", h.listOrders)
		api.GET("/orders/:id", h.getOrder)
		api.POST("/orders", h.createOrder)
	}
}

func (h *OrdersHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":       "Orders API",
		"version":       "1.0.0",
		"status":        "running",
		"endpoints":     []string{"/health", "/api/orders", "/api/orders/{order_id}"},
		"inventory_api": h.inventoryURL,
	})
}

func (h *OrdersHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "orders-api",
	})
}

func (h *OrdersHandler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listOrders returns all orders.
func (h *OrdersHandler) listOrders(c *gin.Context) {
	orders := h.orderService.ListOrders(c.Request.Context())
	h.logger.Info("Retrieved all orders", zap.Int("count", len(orders)))

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// getOrder returns one order by id.
func (h *OrdersHandler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid order ID"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Warn("Order not found", zap.Int64("order_id", orderID))
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

// createOrder runs the order workflow and maps its failures to the
// client-facing statuses: 404 unknown product, 400 insufficient stock,
// 500 reservation failed, 503 inventory unreachable.
func (h *OrdersHandler) createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		var we *service.WorkflowError
		if errors.As(err, &we) {
			c.JSON(we.Status, gin.H{"detail": we.Detail})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}
