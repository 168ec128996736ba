package query

import (
	"fmt"

	"github.com/studimarket/storefront/internal/checkout/domain"
)

// GetOrderQuery looks up an order by its public reference
type GetOrderQuery struct {
	OrderID string
}

// GetOrderHandler handles order lookups
type GetOrderHandler struct {
	orders domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle executes the query
func (h *GetOrderHandler) Handle(q GetOrderQuery) (*domain.Order, error) {
	if q.OrderID == "" {
		return nil, fmt.Errorf("order id is required")
	}
	return h.orders.FindByOrderID(q.OrderID)
}
