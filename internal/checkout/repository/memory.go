package repository

import (
	"fmt"
	"sync"

	"github.com/studimarket/storefront/internal/checkout/domain"
)

// InMemoryOrderRepository keeps orders in a map. Used by tests and by
// local development without Postgres.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	nextID uint
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{orders: make(map[string]domain.Order), nextID: 1}
}

func (r *InMemoryOrderRepository) Create(order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderID]; exists {
		return fmt.Errorf("order already exists: %s", order.OrderID)
	}
	order.ID = r.nextID
	r.nextID++
	r.orders[order.OrderID] = *order
	return nil
}

func (r *InMemoryOrderRepository) FindByOrderID(orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[orderID]
	if !exists {
		return nil, fmt.Errorf("order not found: %s", orderID)
	}
	return &order, nil
}

func (r *InMemoryOrderRepository) UpdateStatus(orderID string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[orderID]
	if !exists {
		return fmt.Errorf("order not found: %s", orderID)
	}
	order.Status = status
	r.orders[orderID] = order
	return nil
}
