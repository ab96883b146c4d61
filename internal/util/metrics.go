package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InventoryChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_checks_total",
		Help: "Total number of inventory checks performed",
	}, []string{"operation"})

	StockLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "inventory_stock_level",
		Help: "Current stock level per product",
	}, []string{"product_id"})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of failed order workflows",
	}, []string{"reason"})

	OrderValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_value_dollars",
		Help:    "Value of created orders in USD",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})

	InventoryReserveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_reserve_latency_seconds",
		Help:    "Latency of remote inventory reservation calls",
		Buckets: prometheus.DefBuckets,
	})

	LowStockAlertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_low_stock_alerts_total",
		Help: "Total number of low stock alerts raised by the order event worker",
	}, []string{"product_id"})

	PageViewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "frontend_page_views_total",
		Help: "Total number of storefront page views",
	}, []string{"page"})

	OrderRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "frontend_order_requests_total",
		Help: "Total number of order requests relayed by the storefront",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
