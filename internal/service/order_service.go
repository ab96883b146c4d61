package service

import (
	"context"
	"time"

	"storefront/internal/broker"
	"storefront/internal/models"
	"storefront/internal/store"
	"storefront/internal/util"

	"go.uber.org/zap"
)

// OrderService orchestrates multi-item inventory reservation into a single
// order outcome.
type OrderService struct {
	orders    *store.Orders
	inventory *InventoryClient
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orders *store.Orders, inventory *InventoryClient, publisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		inventory: inventory,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// CreateOrder runs the order workflow: one check-then-reserve round trip per
// line item against the inventory service, strictly in request order, then
// persists the priced order on full success. The order id is assigned up
// front, so a failed attempt still consumes it.
//
// On failure the workflow aborts at the failing item and reservations
// already made for earlier items are not released.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	orderID := s.orders.NextID()

	items := make([]models.OrderLineItem, 0, len(req.Items))
	var totalValue float64

	for _, item := range req.Items {
		lineItem, err := s.reserveLineItem(ctx, item)
		if err != nil {
			if we, ok := err.(*WorkflowError); ok {
				util.OrdersFailedTotal.WithLabelValues(failureReason(we)).Inc()
			}
			s.logger.Warn("Order workflow aborted",
				zap.Int64("order_id", orderID),
				zap.String("product_id", item.ProductID),
				zap.Error(err))
			return nil, err
		}

		items = append(items, *lineItem)
		totalValue += lineItem.Total
	}

	order := &models.Order{
		OrderID:    orderID,
		CustomerID: req.CustomerID,
		Items:      items,
		TotalValue: totalValue,
		Status:     models.OrderStatusConfirmed,
		CreatedAt:  time.Now().UTC(),
	}
	s.orders.Put(order)

	util.OrdersCreatedTotal.Inc()
	util.OrderValue.Observe(totalValue)
	s.logger.Info("Order created",
		zap.Int64("order_id", orderID),
		zap.String("customer_id", req.CustomerID),
		zap.Float64("total_value", totalValue))

	if err := s.publisher.PublishOrderConfirmed(ctx, order); err != nil {
		s.logger.Error("Failed to publish OrderConfirmed event", zap.Error(err))
	}

	return order, nil
}

// reserveLineItem runs the read-then-reserve protocol for one requested
// item and prices it from the read snapshot.
func (s *OrderService) reserveLineItem(ctx context.Context, item models.OrderItemRequest) (*models.OrderLineItem, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ReserveLineItem")
	defer span.End()

	product, err := s.inventory.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	if product.Stock < item.Quantity {
		return nil, errInsufficientStock(item.ProductID, product.Stock, item.Quantity)
	}

	// Stock may have changed since the read; the reserve call is the
	// authoritative check.
	if _, err := s.inventory.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
		return nil, err
	}

	lineTotal := product.Price * float64(item.Quantity)
	return &models.OrderLineItem{
		ProductID:   item.ProductID,
		ProductName: product.Name,
		Quantity:    item.Quantity,
		UnitPrice:   product.Price,
		Total:       lineTotal,
	}, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (models.Order, error) {
	_, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	return s.orders.Get(orderID)
}

// ListOrders retrieves all orders
func (s *OrderService) ListOrders(ctx context.Context) []models.Order {
	_, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.orders.List()
}
