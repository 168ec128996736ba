package query

import (
	"context"
	"fmt"

	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/wishlist/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// GetWishlistQuery resolves a session's wishlist against the catalog
type GetWishlistQuery struct {
	Session string
}

// WishlistItemView is a saved product resolved against the catalog
type WishlistItemView struct {
	ProductID uint    `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
}

// WishlistView is the resolved wishlist. Count covers every stored id,
// Items only those that still resolve.
type WishlistView struct {
	Items []WishlistItemView `json:"items"`
	Count int                `json:"count"`
}

// GetWishlistHandler handles wishlist resolution
type GetWishlistHandler struct {
	wishlists domain.WishlistRepository
	products  catalogdomain.ProductRepository
}

// NewGetWishlistHandler creates a new get wishlist handler
func NewGetWishlistHandler(wishlists domain.WishlistRepository, products catalogdomain.ProductRepository) *GetWishlistHandler {
	return &GetWishlistHandler{wishlists: wishlists, products: products}
}

// Handle executes the query
func (h *GetWishlistHandler) Handle(ctx context.Context, q GetWishlistQuery) (*WishlistView, error) {
	if q.Session == "" {
		return nil, fmt.Errorf("session is required")
	}

	ids, err := h.wishlists.Load(ctx, q.Session)
	if err != nil {
		return nil, err
	}

	view := &WishlistView{Items: make([]WishlistItemView, 0, len(ids)), Count: len(ids)}
	for _, id := range ids {
		product, err := h.products.FindByID(id)
		if err != nil {
			logger.Warn(ctx).
				Uint("product_id", id).
				Str("session", q.Session).
				Msg("Wishlist references unknown product, omitting")
			continue
		}
		view.Items = append(view.Items, WishlistItemView{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Stock:     product.Stock,
		})
	}
	return view, nil
}
