package command

import (
	"context"
	"strings"
	"time"

	catalogdomain "github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/internal/review/domain"
	checkoutdomain "github.com/studimarket/storefront/internal/checkout/domain"
)

// AddReviewCommand posts a review against a product
type AddReviewCommand struct {
	ProductID uint
	Author    string
	Rating    int
	Text      string
}

// AddReviewHandler handles review creation
type AddReviewHandler struct {
	reviews  domain.ReviewRepository
	products catalogdomain.ProductRepository
}

// NewAddReviewHandler creates a new add review handler
func NewAddReviewHandler(reviews domain.ReviewRepository, products catalogdomain.ProductRepository) *AddReviewHandler {
	return &AddReviewHandler{reviews: reviews, products: products}
}

// Validate checks the review fields
func (cmd AddReviewCommand) Validate() checkoutdomain.ValidationErrors {
	errs := checkoutdomain.ValidationErrors{}
	if strings.TrimSpace(cmd.Text) == "" {
		errs["text"] = "review text is required"
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		errs["rating"] = "rating must be between 1 and 5"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Handle validates the review, checks the product exists and stores it
func (h *AddReviewHandler) Handle(ctx context.Context, cmd AddReviewCommand) (*domain.Review, error) {
	if errs := cmd.Validate(); errs != nil {
		return nil, errs
	}
	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, err
	}

	author := strings.TrimSpace(cmd.Author)
	if author == "" {
		author = "Anónimo"
	}

	review := domain.Review{
		Author:    author,
		Rating:    cmd.Rating,
		Text:      strings.TrimSpace(cmd.Text),
		CreatedAt: time.Now(),
	}
	if err := h.reviews.Append(ctx, cmd.ProductID, review); err != nil {
		return nil, err
	}
	return &review, nil
}
