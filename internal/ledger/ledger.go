// Package ledger records every load run in the ETL_Run table: when it
// started, what it counted, and how it ended.
package ledger

import (
	"context"
	"fmt"

	"github.com/vvka-141/claimload/pkg/claimload"
)

// Ledger persists run lifecycle events. Each run is one ETL_Run row created
// at start and updated in place as the run progresses.
type Ledger struct {
	db     claimload.DB
	logger claimload.Logger
}

// NewLedger creates a Ledger. Panics on nil dependencies.
func NewLedger(db claimload.DB, logger claimload.Logger) *Ledger {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Ledger{db: db, logger: logger}
}

// Start inserts a new run row and returns its generated RunID. The insert
// relies on table defaults for StartedAt and the RUNNING status. A zero or
// negative RunID from the warehouse would poison every later ledger update,
// so it is rejected here.
func (l *Ledger) Start(ctx context.Context) (int64, error) {
	var runID int64
	err := l.db.QueryRow(ctx, `INSERT INTO "ETL_Run" DEFAULT VALUES RETURNING "RunID"`).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to start run: %w", err)
	}
	if runID <= 0 {
		return 0, fmt.Errorf("warehouse returned invalid RunID %d", runID)
	}

	l.logger.Info("Run %d started", runID)
	return runID, nil
}

// RecordCounts stores the staging counts, final counts, and reject total on
// the run row.
func (l *Ledger) RecordCounts(ctx context.Context, runID int64, staging, final claimload.EntityCounts, rejectTotal int64) error {
	_, err := l.db.Exec(ctx, `
		UPDATE "ETL_Run"
		   SET "StgProviderCount" = $1,
		       "StgPatientCount"  = $2,
		       "StgClaimCount"    = $3,
		       "ProviderCount"    = $4,
		       "PatientCount"     = $5,
		       "ClaimCount"       = $6,
		       "RejectTotal"      = $7
		 WHERE "RunID" = $8`,
		staging.Provider, staging.Patient, staging.Claim,
		final.Provider, final.Patient, final.Claim,
		rejectTotal, runID)
	if err != nil {
		return fmt.Errorf("failed to record counts for run %d: %w", runID, err)
	}
	return nil
}

// Finish stamps the run row with its terminal status and end time. Finish is
// called exactly once per run, on the success and on the failure path alike.
func (l *Ledger) Finish(ctx context.Context, runID int64, status claimload.RunStatus) error {
	if !status.IsTerminal() {
		return fmt.Errorf("cannot finish run %d with non-terminal status %s", runID, status)
	}

	_, err := l.db.Exec(ctx, `
		UPDATE "ETL_Run"
		   SET "EndedAt" = now(),
		       "Status"  = $1
		 WHERE "RunID" = $2`,
		string(status), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}

	l.logger.Info("Run %d finished with status %s", runID, status)
	return nil
}

// RejectCount returns how many claims were rejected during the given run.
func (l *Ledger) RejectCount(ctx context.Context, runID int64) (int64, error) {
	var count int64
	err := l.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM "Reject_Claim" WHERE "RunID" = $1`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rejects for run %d: %w", runID, err)
	}
	return count, nil
}
