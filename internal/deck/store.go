package deck

import (
	"context"
	"time"
)

// Store persists decks as small JSON record sets under a structured key.
type Store interface {
	// Load returns the deck for key. A missing deck is (nil, nil).
	Load(ctx context.Context, key Key) ([]Item, error)

	// Save replaces the deck for key.
	Save(ctx context.Context, key Key, items []Item) error

	// LogReview appends one completed-review event for the given item.
	LogReview(ctx context.Context, key Key, fingerprint string, at time.Time) error

	// Close closes the store.
	Close() error
}
