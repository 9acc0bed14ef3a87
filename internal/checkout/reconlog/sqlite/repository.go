// Package sqlite provides a SQLite-backed implementation of
// reconlog.Repository.
//
// WAL mode is enabled on Open so that readers never block the writer: the
// reconciler appends rows while the outcomes endpoint may be reading them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sportshop/checkout-gateway/internal/checkout/reconlog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps the Docker build on Alpine simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only:
// each row is an immutable event in an order's reconciliation history.
const schema = `
CREATE TABLE IF NOT EXISTS reconciliation_logs (
    -- Surrogate primary key, auto-incremented by SQLite.
    id            INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Internal order identifier. Empty when the reconciler ran without a
    -- pending-payment record (page refresh, stale return).
    order_id      TEXT        NOT NULL DEFAULT '',

    -- Row class: OUTCOME or MUTATION_FAILED.
    kind          TEXT        NOT NULL,

    -- Terminal state of the reconciliation: success, failed, error, unknown.
    state         TEXT        NOT NULL,

    -- Raw VNPay response code, when supplied on the return URL.
    gateway_code  TEXT        NOT NULL DEFAULT '',

    -- Failure message (MUTATION_FAILED) or user-facing summary (OUTCOME).
    detail        TEXT        NOT NULL DEFAULT '',

    -- W3C trace_id / span_id from the active OTel span.
    trace_id      TEXT        NOT NULL DEFAULT '',
    span_id       TEXT        NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    created_at    TEXT        NOT NULL
);

-- The common query: "give me the reconciliation history for order X".
CREATE INDEX IF NOT EXISTS idx_recon_logs_order_id ON reconciliation_logs(order_id, created_at);

-- The operational query: "which orders have failed mutations?".
CREATE INDEX IF NOT EXISTS idx_recon_logs_kind ON reconciliation_logs(kind, created_at);
`

// Repository is the SQLite implementation of reconlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema. WAL mode is enabled for better concurrent read/write behaviour.
func Open(path string) (*Repository, error) {
	// The pure-Go driver configures connection state through _pragma query
	// parameters. busy_timeout waits for locks instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	// "sqlite", not "sqlite3", for the modernc driver.
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends one reconciliation log entry. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *reconlog.Entry) error {
	const q = `
		INSERT INTO reconciliation_logs
			(order_id, kind, state, gateway_code, detail, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OrderID,
		string(entry.Kind),
		entry.State,
		entry.GatewayCode,
		entry.Detail,
		entry.TraceID,
		entry.SpanID,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save entry for order %q: %w", entry.OrderID, err)
	}
	return nil
}

// Latest returns the most recent entry for an order, or nil when the order
// has no reconciliation history.
func (r *Repository) Latest(ctx context.Context, orderID string) (*reconlog.Entry, error) {
	const q = `
		SELECT order_id, kind, state, gateway_code, detail, trace_id, span_id, created_at
		FROM   reconciliation_logs
		WHERE  order_id = ?
		ORDER  BY created_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, orderID)

	var entry reconlog.Entry
	var kind, createdAt string
	err := row.Scan(
		&entry.OrderID,
		&kind,
		&entry.State,
		&entry.GatewayCode,
		&entry.Detail,
		&entry.TraceID,
		&entry.SpanID,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: latest for %q: %w", orderID, err)
	}

	entry.Kind = reconlog.Kind(kind)
	entry.CreatedAt, err = parseRFC3339(createdAt)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// applySchema runs the DDL once. Idempotent due to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
