package command

import (
	"fmt"

	"github.com/studimarket/storefront/internal/catalog/domain"
)

// AdjustStockCommand changes a product's stock. Delta mode (Relative=true)
// is used by the order-placed consumer; absolute mode by the admin endpoint.
type AdjustStockCommand struct {
	ProductID uint
	Quantity  int
	Relative  bool
}

// AdjustStockHandler handles stock adjustments
type AdjustStockHandler struct {
	repo domain.ProductRepository
}

// NewAdjustStockHandler creates a new adjust stock handler
func NewAdjustStockHandler(repo domain.ProductRepository) *AdjustStockHandler {
	return &AdjustStockHandler{repo: repo}
}

// Handle executes the stock adjustment. Relative adjustments clamp at zero,
// they never drive stock negative.
func (h *AdjustStockHandler) Handle(cmd AdjustStockCommand) error {
	if cmd.ProductID == 0 {
		return fmt.Errorf("product id is required")
	}

	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return fmt.Errorf("product not found")
	}

	stock := cmd.Quantity
	if cmd.Relative {
		stock = product.Stock + cmd.Quantity
	}
	if stock < 0 {
		if !cmd.Relative {
			return fmt.Errorf("stock cannot be negative")
		}
		stock = 0
	}

	if err := h.repo.UpdateStock(cmd.ProductID, stock); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	return nil
}
