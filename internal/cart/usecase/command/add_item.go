package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/cart/domain"
)

// AddItemCommand represents the command to add a product to a cart
type AddItemCommand struct {
	Session   string
	ProductID uint
	Quantity  int
}

// AddItemHandler handles adding items to a cart
type AddItemHandler struct {
	repo domain.CartRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(repo domain.CartRepository) *AddItemHandler {
	return &AddItemHandler{repo: repo}
}

// Handle merges the quantity into an existing line item or appends a new
// one. The cart accepts any quantity; stock is a display concern.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) ([]domain.LineItem, error) {
	if cmd.Session == "" {
		return nil, fmt.Errorf("session is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}
	if cmd.Quantity <= 0 {
		cmd.Quantity = 1
	}

	items, err := h.repo.Load(ctx, cmd.Session)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == cmd.ProductID {
			items[i].Quantity += cmd.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.LineItem{ProductID: cmd.ProductID, Quantity: cmd.Quantity})
	}

	if err := h.repo.Save(ctx, cmd.Session, items); err != nil {
		return nil, err
	}
	return items, nil
}
