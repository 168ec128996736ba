package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/cart/domain"
)

// RemoveItemCommand drops a line item; removing an absent id is a no-op
type RemoveItemCommand struct {
	Session   string
	ProductID uint
}

// RemoveItemHandler handles line item removal
type RemoveItemHandler struct {
	setQuantity *SetQuantityHandler
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(repo domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{setQuantity: NewSetQuantityHandler(repo)}
}

// Handle executes the removal as a zero-quantity update
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) ([]domain.LineItem, error) {
	if cmd.Session == "" {
		return nil, fmt.Errorf("session is required")
	}
	return h.setQuantity.Handle(ctx, SetQuantityCommand{
		Session:   cmd.Session,
		ProductID: cmd.ProductID,
		Quantity:  0,
	})
}
