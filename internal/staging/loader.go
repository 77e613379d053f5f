// Package staging manages the warehouse staging tables: the truncate that
// makes each run repeatable and the bulk COPY that fills them.
package staging

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/claimload/internal/frame"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// Loader owns the staging side of a load run.
//
// Thread-Safety: safe for concurrent use when the underlying DB is; a load
// run uses it sequentially.
type Loader struct {
	db     claimload.DB
	logger claimload.Logger
}

// NewLoader creates a Loader. Panics on nil dependencies: those are
// programmer errors that should fail at startup, not mid-run.
func NewLoader(db claimload.DB, logger claimload.Logger) *Loader {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{db: db, logger: logger}
}

// TruncateAll empties every staging table in a single transaction so a
// failed run never leaves a partially cleared staging area. Claims go first
// to respect foreign keys.
func (l *Loader) TruncateAll(ctx context.Context) error {
	tables := []string{
		claimload.StgClaimTable,
		claimload.StgPatientTable,
		claimload.StgProviderTable,
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin truncate transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", pgx.Identifier{table}.Sanitize())); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit truncate transaction: %w", err)
	}

	l.logger.Info("Staging tables truncated")
	return nil
}

// Load bulk-appends a coerced frame into the named staging table using the
// COPY protocol and returns the number of rows written. Loading an empty
// frame is rejected with claimload.ErrEmptyLoad so a missing or blank source
// file can never silently wipe the final tables on the next merge.
func (l *Loader) Load(ctx context.Context, table string, f *frame.Frame) (int64, error) {
	if f == nil || f.RowCount() == 0 {
		return 0, fmt.Errorf("refusing to load empty frame into %s: %w", table, claimload.ErrEmptyLoad)
	}

	rows, err := l.db.CopyFrom(ctx, pgx.Identifier{table}, f.Columns, pgx.CopyFromRows(f.Rows))
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", table, err)
	}
	if rows != int64(f.RowCount()) {
		return rows, fmt.Errorf("loaded %d of %d rows into %s", rows, f.RowCount(), table)
	}

	l.logger.Info("Loaded %d rows into %s", rows, table)
	return rows, nil
}

// Count returns the row count of the named table.
func (l *Loader) Count(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{table}.Sanitize())
	if err := l.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}
