package api

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/service"
	"storefront/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// GatewayHandler serves the storefront gateway. It relays order requests to
// the orders service verbatim and adds no business logic of its own.
type GatewayHandler struct {
	orders    *service.OrdersClient
	ordersURL string
	logger    *zap.Logger
}

// NewGatewayHandler creates a new gateway handler
func NewGatewayHandler(orders *service.OrdersClient, ordersURL string) *GatewayHandler {
	return &GatewayHandler{
		orders:    orders,
		ordersURL: ordersURL,
		logger:    util.GetLogger(),
	}
}

// SetupRoutes sets up HTTP routes
func (h *GatewayHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("storefront-gateway"))
	router.Use(requestIDMiddleware())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.home)
	router.GET("/health", h.healthCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/orders", h.listOrders)
		api.GET("/orders/:id", h.getOrder)
		api.POST("/orders", h.createOrder)
	}
}

func (h *GatewayHandler) home(c *gin.Context) {
	util.PageViewsTotal.WithLabelValues("home").Inc()
	h.logger.Info("Home page accessed")

	c.JSON(http.StatusOK, gin.H{
		"service":        "Storefront Frontend",
		"version":        "1.0.0",
		"status":         "running",
		"endpoints":      []string{"/health", "/api/orders", "/api/orders/{order_id}"},
		"orders_api_url": h.ordersURL,
	})
}

func (h *GatewayHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storefront-frontend",
	})
}

// listOrders relays get-all-orders to the orders service.
func (h *GatewayHandler) listOrders(c *gin.Context) {
	reply, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		h.relayError(c, err)
		return
	}

	c.Data(reply.Status, "application/json", reply.Body)
}

// getOrder relays get-order-by-id to the orders service.
func (h *GatewayHandler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid order ID"})
		return
	}

	reply, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.relayError(c, err)
		return
	}

	c.Data(reply.Status, "application/json", reply.Body)
}

// createOrder relays order creation with the request body unchanged.
func (h *GatewayHandler) createOrder(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unable to read request body"})
		return
	}

	util.OrderRequestsTotal.Inc()

	reply, err := h.orders.CreateOrder(c.Request.Context(), body)
	if err != nil {
		h.relayError(c, err)
		return
	}

	c.Data(reply.Status, "application/json", reply.Body)
}

// relayError maps client failures: orders service unreachable is 503,
// an undecodable upstream body is 502.
func (h *GatewayHandler) relayError(c *gin.Context, err error) {
	var we *service.WorkflowError
	if errors.As(err, &we) {
		c.JSON(we.Status, gin.H{"detail": we.Detail})
		return
	}

	h.logger.Error("Unexpected gateway failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
