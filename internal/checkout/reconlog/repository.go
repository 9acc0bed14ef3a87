package reconlog

import "context"

// Repository is the port for persisting reconciliation log entries. The
// reconciler depends on this abstraction rather than on SQLite directly, so
// tests can use an in-memory implementation.
type Repository interface {
	// Save appends a row. The log is append-only; rows are never updated.
	Save(ctx context.Context, entry *Entry) error

	// Latest returns the most recent entry for an order, or nil when the
	// order has no reconciliation history.
	Latest(ctx context.Context, orderID string) (*Entry, error)
}
