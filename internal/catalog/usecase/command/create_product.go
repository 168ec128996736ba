package command

import (
	"fmt"

	"github.com/studimarket/storefront/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Title       string
	Description string
	Price       float64
	Stock       int
	Category    string
	Image       string
	RatingRate  float64
	RatingCount int
	Featured    bool
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.RatingRate < 0 || cmd.RatingRate > 5 {
		return nil, fmt.Errorf("rating must be between 0 and 5")
	}

	product := &domain.Product{
		Title:       cmd.Title,
		Description: cmd.Description,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		Category:    cmd.Category,
		Image:       cmd.Image,
		RatingRate:  cmd.RatingRate,
		RatingCount: cmd.RatingCount,
		Featured:    cmd.Featured,
		IsActive:    true,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
