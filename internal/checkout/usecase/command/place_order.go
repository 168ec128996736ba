package command

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	cartdomain "github.com/studimarket/storefront/internal/cart/domain"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/checkout/domain"
	"github.com/studimarket/storefront/kafka"
	"github.com/studimarket/storefront/pkg/logger"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EventPublisher publishes order placed events. A nil publisher disables
// event emission; the order still completes.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
}

// PlaceOrderCommand carries the checkout form
type PlaceOrderCommand struct {
	Session       string
	UserID        uint
	Name          string
	Email         string
	Address       string
	City          string
	PostalCode    string
	PaymentMethod string
}

// PlaceOrderHandler runs the checkout pipeline
type PlaceOrderHandler struct {
	orders    domain.OrderRepository
	carts     cartdomain.CartRepository
	products  catalogdomain.ProductRepository
	publisher EventPublisher

	// processingDelay simulates payment capture; zero in tests
	processingDelay time.Duration
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(
	orders domain.OrderRepository,
	carts cartdomain.CartRepository,
	products catalogdomain.ProductRepository,
	publisher EventPublisher,
	processingDelay time.Duration,
) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		orders:          orders,
		carts:           carts,
		products:        products,
		publisher:       publisher,
		processingDelay: processingDelay,
	}
}

// Validate checks the form fields. Returns nil when the form is acceptable.
func (cmd PlaceOrderCommand) Validate() domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	if strings.TrimSpace(cmd.Name) == "" {
		errs["name"] = "name is required"
	}
	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "email is not valid"
	}
	if strings.TrimSpace(cmd.Address) == "" {
		errs["address"] = "address is required"
	}
	if strings.TrimSpace(cmd.City) == "" {
		errs["city"] = "city is required"
	}
	if strings.TrimSpace(cmd.PostalCode) == "" {
		errs["postal_code"] = "postal code is required"
	}
	if strings.TrimSpace(cmd.PaymentMethod) == "" {
		errs["payment_method"] = "payment method is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Handle validates the form, prices the cart, persists the order and walks
// it pending -> processing -> completed. The cart is cleared and one event
// per line is published once the order completes.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if cmd.Session == "" {
		return nil, fmt.Errorf("session is required")
	}
	if errs := cmd.Validate(); errs != nil {
		return nil, errs
	}

	lines, err := h.carts.Load(ctx, cmd.Session)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var amount float64
	for _, line := range lines {
		product, err := h.products.FindByID(line.ProductID)
		if err != nil {
			logger.Warn(ctx).
				Uint("product_id", line.ProductID).
				Str("session", cmd.Session).
				Msg("Cart line no longer resolves, excluding from order")
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		amount += product.Price * float64(line.Quantity)
	}
	if len(items) == 0 {
		return nil, domain.ValidationErrors{"cart": "cart is empty"}
	}

	order := &domain.Order{
		OrderID:       domain.NewOrderID(),
		Session:       cmd.Session,
		UserID:        cmd.UserID,
		Name:          strings.TrimSpace(cmd.Name),
		Email:         strings.TrimSpace(cmd.Email),
		Address:       strings.TrimSpace(cmd.Address),
		City:          strings.TrimSpace(cmd.City),
		PostalCode:    strings.TrimSpace(cmd.PostalCode),
		PaymentMethod: strings.TrimSpace(cmd.PaymentMethod),
		Amount:        amount,
		Status:        domain.StatusPending,
		Items:         items,
	}
	if err := h.orders.Create(order); err != nil {
		return nil, err
	}

	if err := h.orders.UpdateStatus(order.OrderID, domain.StatusProcessing); err != nil {
		return nil, err
	}
	order.Status = domain.StatusProcessing

	if h.processingDelay > 0 {
		select {
		case <-time.After(h.processingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := h.orders.UpdateStatus(order.OrderID, domain.StatusCompleted); err != nil {
		return nil, err
	}
	order.Status = domain.StatusCompleted

	if err := h.carts.Delete(ctx, cmd.Session); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("session", cmd.Session).
			Str("order_id", order.OrderID).
			Msg("Failed to clear cart after checkout")
	}

	if h.publisher != nil {
		for _, item := range order.Items {
			event := kafka.OrderPlacedEvent{
				OrderID:       order.OrderID,
				ProductID:     item.ProductID,
				Quantity:      int32(item.Quantity),
				UserID:        order.UserID,
				Session:       order.Session,
				Amount:        item.Price * float64(item.Quantity),
				PaymentMethod: order.PaymentMethod,
			}
			if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
				logger.Error(ctx).
					Err(err).
					Str("order_id", order.OrderID).
					Uint("product_id", item.ProductID).
					Msg("Failed to publish order placed event")
			}
		}
	}

	logger.Info(ctx).
		Str("order_id", order.OrderID).
		Str("session", cmd.Session).
		Float64("amount", order.Amount).
		Int("items", len(order.Items)).
		Msg("Order completed")

	return order, nil
}
