package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// PoolAdapter adapts *pgxpool.Pool to implement the claimload.DB interface.
// This decouples the internal implementation from the public API, preventing
// direct exposure of pgx-specific pool types.
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PoolAdapter struct {
	pool *pgxpool.Pool
}

// NewPoolAdapter creates a new PoolAdapter wrapping the given pool.
func NewPoolAdapter(pool *pgxpool.Pool) claimload.DB {
	return &PoolAdapter{pool: pool}
}

// Exec executes a statement without returning any rows.
func (p *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

// QueryRow executes a query that is expected to return at most one row.
func (p *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) claimload.Row {
	return &rowAdapter{row: p.pool.QueryRow(ctx, sql, args...)}
}

// Begin starts a transaction on a pooled connection.
func (p *PoolAdapter) Begin(ctx context.Context) (claimload.Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &txAdapter{tx: tx}, nil
}

// CopyFrom performs a bulk append using the COPY protocol.
func (p *PoolAdapter) CopyFrom(ctx context.Context, table pgx.Identifier, columns []string, rows pgx.CopyFromSource) (int64, error) {
	return p.pool.CopyFrom(ctx, table, columns, rows)
}

// rowAdapter adapts pgx.Row to implement claimload.Row.
type rowAdapter struct {
	row interface{ Scan(...any) error }
}

// Scan reads the values from the row into dest values.
func (r *rowAdapter) Scan(dest ...any) error {
	return r.row.Scan(dest...)
}

// txAdapter adapts pgx.Tx to implement claimload.Tx.
type txAdapter struct {
	tx pgx.Tx
}

// Exec executes a statement within the transaction.
func (t *txAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}

// Commit makes the transaction's effects durable.
func (t *txAdapter) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback discards the transaction.
func (t *txAdapter) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Verify PoolAdapter implements DB at compile time
var _ claimload.DB = (*PoolAdapter)(nil)
