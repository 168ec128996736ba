package domain

import "context"

// LineItem is a single cart row. Only the product id and quantity are
// persisted; display fields are joined from the catalog at read time.
// The wire shape matches the legacy `{id, quantity}` persistence format.
type LineItem struct {
	ProductID uint `json:"id"`
	Quantity  int  `json:"quantity"`
}

// Valid reports whether a persisted line item is usable. Entries with a
// missing id or a non-positive quantity are discarded at load.
func (li LineItem) Valid() bool {
	return li.ProductID != 0 && li.Quantity > 0
}

// CartRepository persists the full line-item list per session.
// Load is self-healing: corrupt stored state yields an empty list, never
// an error the caller has to handle beyond logging.
type CartRepository interface {
	Load(ctx context.Context, session string) ([]LineItem, error)
	Save(ctx context.Context, session string, items []LineItem) error
	Delete(ctx context.Context, session string) error
}
