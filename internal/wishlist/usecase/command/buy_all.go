package command

import (
	"context"
	"fmt"

	cartcommand "github.com/studimarket/storefront/internal/cart/usecase/command"
	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/wishlist/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// BuyAllCommand moves every in-stock wishlist entry into the cart
type BuyAllCommand struct {
	Session string
}

// BuyAllResult reports what the transfer accomplished. Ids that no longer
// resolve against the catalog count in neither bucket.
type BuyAllResult struct {
	Success      bool   `json:"success"`
	AddedCount   int    `json:"added_count"`
	SkippedCount int    `json:"skipped_count"`
	Message      string `json:"message"`
}

// BuyAllHandler handles the wishlist to cart transfer
type BuyAllHandler struct {
	wishlists domain.WishlistRepository
	products  catalogdomain.ProductRepository
	addToCart *cartcommand.AddItemHandler
}

// NewBuyAllHandler creates a new buy all handler
func NewBuyAllHandler(
	wishlists domain.WishlistRepository,
	products catalogdomain.ProductRepository,
	addToCart *cartcommand.AddItemHandler,
) *BuyAllHandler {
	return &BuyAllHandler{wishlists: wishlists, products: products, addToCart: addToCart}
}

// Handle adds one unit of every in-stock wishlist product to the cart.
// Out-of-stock entries are skipped, unknown ids are dropped.
func (h *BuyAllHandler) Handle(ctx context.Context, cmd BuyAllCommand) (*BuyAllResult, error) {
	if cmd.Session == "" {
		return nil, fmt.Errorf("session is required")
	}

	ids, err := h.wishlists.Load(ctx, cmd.Session)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &BuyAllResult{Success: false, Message: "Wishlist is empty"}, nil
	}

	result := &BuyAllResult{}
	for _, id := range ids {
		product, err := h.products.FindByID(id)
		if err != nil {
			logger.Warn(ctx).
				Uint("product_id", id).
				Str("session", cmd.Session).
				Msg("Wishlist references unknown product, dropping")
			continue
		}
		if product.Stock <= 0 {
			result.SkippedCount++
			continue
		}

		if _, err := h.addToCart.Handle(ctx, cartcommand.AddItemCommand{
			Session:   cmd.Session,
			ProductID: id,
			Quantity:  1,
		}); err != nil {
			return nil, err
		}
		result.AddedCount++
	}

	result.Success = result.AddedCount > 0
	switch {
	case result.Success && result.SkippedCount > 0:
		result.Message = fmt.Sprintf("%d products added to cart, %d out of stock", result.AddedCount, result.SkippedCount)
	case result.Success:
		result.Message = fmt.Sprintf("%d products added to cart", result.AddedCount)
	default:
		result.Message = "No products could be added to cart"
	}
	return result, nil
}
