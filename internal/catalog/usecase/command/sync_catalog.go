package command

import (
	"context"
	"fmt"

	"github.com/studimarket/storefront/internal/catalog/domain"
	"github.com/studimarket/storefront/pkg/logger"
)

// ProductFetcher retrieves normalized products from the upstream API
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// SyncCatalogHandler imports the upstream catalog into the local repository
type SyncCatalogHandler struct {
	repo    domain.ProductRepository
	fetcher ProductFetcher
}

// SyncResult summarizes a catalog sync run
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

// NewSyncCatalogHandler creates a new sync catalog handler
func NewSyncCatalogHandler(repo domain.ProductRepository, fetcher ProductFetcher) *SyncCatalogHandler {
	return &SyncCatalogHandler{repo: repo, fetcher: fetcher}
}

// Handle fetches the upstream catalog and upserts every product.
// Individual upsert failures are logged and counted, not fatal.
func (h *SyncCatalogHandler) Handle(ctx context.Context) (*SyncResult, error) {
	products, err := h.fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upstream catalog: %w", err)
	}

	result := &SyncResult{Fetched: len(products)}
	for i := range products {
		if err := h.repo.Upsert(&products[i]); err != nil {
			result.Failed++
			logger.Error(ctx).
				Err(err).
				Uint("product_id", products[i].ID).
				Msg("Failed to upsert product")
			continue
		}
		result.Upserted++
	}

	logger.Info(ctx).
		Int("fetched", result.Fetched).
		Int("upserted", result.Upserted).
		Int("failed", result.Failed).
		Msg("Catalog sync finished")
	return result, nil
}
