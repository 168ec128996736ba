package domain

import (
	"context"
	"strings"
	"time"
)

// Review is one customer comment on a product
type Review struct {
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the review carries the minimum required content
func (r Review) Valid() bool {
	return strings.TrimSpace(r.Text) != "" && r.Rating >= 1 && r.Rating <= 5
}

// ReviewRepository persists per-product review lists. Load tolerates
// corrupt payloads and returns an empty list instead of an error.
type ReviewRepository interface {
	Load(ctx context.Context, productID uint) ([]Review, error)
	Append(ctx context.Context, productID uint, review Review) error
}
