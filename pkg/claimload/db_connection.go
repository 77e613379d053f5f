package claimload

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the warehouse operations the load pipeline needs.
// This interface decouples the staging loader, merge orchestrator, and run
// ledger from pgx pool types so each can be driven by a test double.
//
// Thread-Safety: Implementations should follow their underlying connection's
// thread-safety guarantees. Connection pool implementations are typically safe
// for concurrent use.
type DB interface {
	// Exec executes a statement without returning any rows.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// QueryRow executes a query that is expected to return at most one row.
	// Always returns a non-nil Row. Errors are deferred until Row's Scan method is called.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Begin starts a transaction. The caller must Commit or Rollback.
	Begin(ctx context.Context) (Tx, error)

	// CopyFrom performs a bulk append using the COPY protocol.
	// Returns the number of rows written.
	CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, rows pgx.CopyFromSource) (int64, error)
}

// Row represents a single row returned by QueryRow.
type Row interface {
	// Scan reads the values from the row into dest values.
	// Returns an error if no row was found or if the scan fails.
	Scan(dest ...any) error
}

// Tx is a transaction scope over the warehouse connection.
type Tx interface {
	// Exec executes a statement within the transaction.
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Commit makes the transaction's effects durable.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Safe to call after Commit;
	// the error is ignored in that case by convention.
	Rollback(ctx context.Context) error
}
