package store

import (
	"context"

	"pagos/internal/core"
)

// Collections is the durable collection-per-user abstraction. A user's
// payments are always read and written as a whole; there is no record-level
// persistence and no locking, so concurrent writers for the same user race
// (last writer wins). That tradeoff is accepted for a single-user dashboard.
type Collections interface {
	// Load returns the user's full collection in stored order. A user that
	// has never written anything gets an empty collection, not an error.
	Load(ctx context.Context, userID string) ([]core.Payment, error)

	// Save replaces the user's collection wholesale, creating the underlying
	// storage lazily on first write.
	Save(ctx context.Context, userID string, payments []core.Payment) error
}
