package query

import (
	"fmt"

	"github.com/studimarket/storefront/internal/catalog/domain"
)

// ListCategoriesHandler handles the category listing query
type ListCategoriesHandler struct {
	repo domain.ProductRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.ProductRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle returns the distinct categories of active products
func (h *ListCategoriesHandler) Handle() ([]string, error) {
	categories, err := h.repo.FindCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
