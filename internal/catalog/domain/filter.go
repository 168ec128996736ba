package domain

import (
	"math"
	"sort"
	"strings"
)

// Sort orders accepted by the catalog listing
const (
	SortDefault    = ""
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortRatingDesc = "rating_desc"
	SortSalesDesc  = "sales_desc"
	SortFeatured   = "featured"
)

// FilterSpec describes a catalog filter. Zero values disable each stage:
// empty Category/Search skip their stages, MinRating 0 disables the rating
// stage. The price stage always applies, inclusive on both ends.
type FilterSpec struct {
	Category  string
	Search    string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
	Sort      string
}

// DefaultFilterSpec returns a spec that matches the whole catalog
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{MaxPrice: math.MaxFloat64}
}

// Apply filters products through the spec's stages and sorts the result.
// Pure: the input slice is never mutated and relative order is preserved
// unless a sort is requested. MinPrice > MaxPrice yields an empty result.
func (s FilterSpec) Apply(products []Product) []Product {
	filtered := make([]Product, 0, len(products))

	category := strings.ToLower(strings.TrimSpace(s.Category))
	search := strings.ToLower(strings.TrimSpace(s.Search))

	for _, p := range products {
		if category != "" && !strings.Contains(strings.ToLower(p.Category), category) {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if p.Price < s.MinPrice || p.Price > s.MaxPrice {
			continue
		}
		if s.MinRating > 0 && p.RatingRate < s.MinRating {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, s.Sort)
	return filtered
}

// matchesSearch reports whether the lowercased term appears in the title,
// description or category.
func matchesSearch(p Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

func sortProducts(products []Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingRate > products[j].RatingRate
		})
	case SortSalesDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingCount > products[j].RatingCount
		})
	case SortFeatured:
		// Stable partition: featured first, input order within each half
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}
}
