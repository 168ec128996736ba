package query

import (
	"context"

	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/review/domain"
)

// ListReviewsQuery fetches a product's reviews
type ListReviewsQuery struct {
	ProductID uint
}

// ListReviewsHandler handles review listing
type ListReviewsHandler struct {
	reviews  domain.ReviewRepository
	products catalogdomain.ProductRepository
}

// NewListReviewsHandler creates a new list reviews handler
func NewListReviewsHandler(reviews domain.ReviewRepository, products catalogdomain.ProductRepository) *ListReviewsHandler {
	return &ListReviewsHandler{reviews: reviews, products: products}
}

// Handle executes the query. The product must exist.
func (h *ListReviewsHandler) Handle(ctx context.Context, q ListReviewsQuery) ([]domain.Review, error) {
	if _, err := h.products.FindByID(q.ProductID); err != nil {
		return nil, err
	}
	return h.reviews.Load(ctx, q.ProductID)
}
