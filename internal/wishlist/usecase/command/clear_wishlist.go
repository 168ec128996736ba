package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/wishlist/domain"
)

// ClearWishlistCommand empties a session's wishlist
type ClearWishlistCommand struct {
	Session string
}

// ClearWishlistHandler handles wishlist clearing
type ClearWishlistHandler struct {
	repo domain.WishlistRepository
}

// NewClearWishlistHandler creates a new clear handler
func NewClearWishlistHandler(repo domain.WishlistRepository) *ClearWishlistHandler {
	return &ClearWishlistHandler{repo: repo}
}

// Handle executes the clear
func (h *ClearWishlistHandler) Handle(ctx context.Context, cmd ClearWishlistCommand) error {
	if cmd.Session == "" {
		return fmt.Errorf("session is required")
	}
	return h.repo.Delete(ctx, cmd.Session)
}
