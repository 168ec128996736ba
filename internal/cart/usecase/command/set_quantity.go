package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/cart/domain"
)

// SetQuantityCommand overwrites a line item's quantity.
// A quantity of zero or less removes the line item.
type SetQuantityCommand struct {
	Session   string
	ProductID uint
	Quantity  int
}

// SetQuantityHandler handles quantity updates
type SetQuantityHandler struct {
	repo domain.CartRepository
}

// NewSetQuantityHandler creates a new set quantity handler
func NewSetQuantityHandler(repo domain.CartRepository) *SetQuantityHandler {
	return &SetQuantityHandler{repo: repo}
}

// Handle executes the quantity update
func (h *SetQuantityHandler) Handle(ctx context.Context, cmd SetQuantityCommand) ([]domain.LineItem, error) {
	if cmd.Session == "" {
		return nil, fmt.Errorf("session is required")
	}
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product id is required")
	}

	items, err := h.repo.Load(ctx, cmd.Session)
	if err != nil {
		return nil, err
	}

	updated := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != cmd.ProductID {
			updated = append(updated, item)
			continue
		}
		if cmd.Quantity > 0 {
			item.Quantity = cmd.Quantity
			updated = append(updated, item)
		}
		// quantity <= 0 drops the line item
	}

	if err := h.repo.Save(ctx, cmd.Session, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
