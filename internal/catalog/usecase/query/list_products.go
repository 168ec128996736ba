package query

import (
	"fmt"

	"github.com/studimarket/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products through a filter
type ListProductsQuery struct {
	Filter domain.FilterSpec
	Limit  int
	Skip   int
}

// ListProductsResult carries the page plus the filtered total
type ListProductsResult struct {
	Products []domain.Product
	Total    int
}

// ListProductsHandler handles product listing
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle loads the catalog, applies the filter spec and paginates.
// The catalog is small enough that filtering stays in memory.
func (h *ListProductsHandler) Handle(q ListProductsQuery) (*ListProductsResult, error) {
	products, err := h.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := q.Filter.Apply(products)
	total := len(filtered)

	if q.Skip > 0 {
		if q.Skip >= len(filtered) {
			filtered = nil
		} else {
			filtered = filtered[q.Skip:]
		}
	}
	if q.Limit > 0 && q.Limit < len(filtered) {
		filtered = filtered[:q.Limit]
	}

	return &ListProductsResult{Products: filtered, Total: total}, nil
}
