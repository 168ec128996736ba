package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/wishlist/domain"
)

// RemoveItemCommand drops a product from the wishlist; absent ids are a no-op
type RemoveItemCommand struct {
	Session   string
	ProductID uint
}

// RemoveItemHandler handles wishlist removals
type RemoveItemHandler struct {
	repo domain.WishlistRepository
}

// NewRemoveItemHandler creates a new remove handler
func NewRemoveItemHandler(repo domain.WishlistRepository) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo}
}

// Handle executes the removal
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	if cmd.Session == "" {
		return fmt.Errorf("session is required")
	}

	ids, err := h.repo.Load(ctx, cmd.Session)
	if err != nil {
		return err
	}

	kept := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != cmd.ProductID {
			kept = append(kept, id)
		}
	}
	return h.repo.Save(ctx, cmd.Session, kept)
}
