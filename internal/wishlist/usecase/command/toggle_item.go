package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/wishlist/domain"
)

// ToggleItemCommand flips a product's wishlist membership
type ToggleItemCommand struct {
	Session   string
	ProductID uint
}

// ToggleItemHandler handles wishlist toggles
type ToggleItemHandler struct {
	repo domain.WishlistRepository
}

// NewToggleItemHandler creates a new toggle handler
func NewToggleItemHandler(repo domain.WishlistRepository) *ToggleItemHandler {
	return &ToggleItemHandler{repo: repo}
}

// Handle flips membership and reports whether the product is now present
func (h *ToggleItemHandler) Handle(ctx context.Context, cmd ToggleItemCommand) (bool, error) {
	if cmd.Session == "" {
		return false, fmt.Errorf("session is required")
	}
	if cmd.ProductID == 0 {
		return false, fmt.Errorf("product id is required")
	}

	ids, err := h.repo.Load(ctx, cmd.Session)
	if err != nil {
		return false, err
	}

	if domain.Contains(ids, cmd.ProductID) {
		kept := make([]uint, 0, len(ids)-1)
		for _, id := range ids {
			if id != cmd.ProductID {
				kept = append(kept, id)
			}
		}
		return false, h.repo.Save(ctx, cmd.Session, kept)
	}

	return true, h.repo.Save(ctx, cmd.Session, append(ids, cmd.ProductID))
}
