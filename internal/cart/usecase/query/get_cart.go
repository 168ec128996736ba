package query

import (
	"context"
	"fmt"

	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/cart/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// GetCartQuery resolves a session's cart against the catalog
type GetCartQuery struct {
	Session string
}

// CartItemView is a line item joined with its product
type CartItemView struct {
	ProductID uint    `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// CartView is the resolved cart. Count covers every stored line item,
// Items and Total only those whose product still exists in the catalog.
type CartView struct {
	Items []CartItemView `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"count"`
}

// GetCartHandler handles cart resolution
type GetCartHandler struct {
	carts    domain.CartRepository
	products catalogdomain.ProductRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts domain.CartRepository, products catalogdomain.ProductRepository) *GetCartHandler {
	return &GetCartHandler{carts: carts, products: products}
}

// Handle executes the query
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*CartView, error) {
	if q.Session == "" {
		return nil, fmt.Errorf("session is required")
	}

	items, err := h.carts.Load(ctx, q.Session)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: make([]CartItemView, 0, len(items))}
	for _, item := range items {
		view.Count += item.Quantity

		product, err := h.products.FindByID(item.ProductID)
		if err != nil {
			logger.Warn(ctx).
				Uint("product_id", item.ProductID).
				Str("session", q.Session).
				Msg("cart references unknown product, omitting line item")
			continue
		}

		subtotal := product.Price * float64(item.Quantity)
		view.Items = append(view.Items, CartItemView{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Stock:     product.Stock,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		view.Total += subtotal
	}

	return view, nil
}
