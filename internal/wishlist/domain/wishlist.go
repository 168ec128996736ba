package domain

import "context"

// WishlistRepository persists the set of product ids a session has saved
// for later. Load tolerates corrupt payloads and returns an empty set
// instead of an error, the same contract the cart store honors.
type WishlistRepository interface {
	Load(ctx context.Context, session string) ([]uint, error)
	Save(ctx context.Context, session string, ids []uint) error
	Delete(ctx context.Context, session string) error
}

// Contains reports whether id is in ids
func Contains(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
