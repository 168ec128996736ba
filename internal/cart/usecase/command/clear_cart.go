package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/cart/domain"
)

// ClearCartCommand empties a session's cart
type ClearCartCommand struct {
	Session string
}

// ClearCartHandler handles cart clearing
type ClearCartHandler struct {
	repo domain.CartRepository
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(repo domain.CartRepository) *ClearCartHandler {
	return &ClearCartHandler{repo: repo}
}

// Handle executes the clear
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) error {
	if cmd.Session == "" {
		return fmt.Errorf("session is required")
	}
	return h.repo.Delete(ctx, cmd.Session)
}
