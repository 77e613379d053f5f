// Package merge drives the server-side upsert procedures that promote
// staged rows into the final tables.
package merge

import (
	"context"
	"fmt"

	"github.com/vvka-141/claimload/pkg/claimload"
)

// Orchestrator executes the merge procedures in dependency order. The
// procedure bodies live in the warehouse and are opaque here; this side only
// sequences them and surfaces failures.
type Orchestrator struct {
	db     claimload.DB
	logger claimload.Logger
}

// NewOrchestrator creates an Orchestrator. Panics on nil dependencies.
func NewOrchestrator(db claimload.DB, logger claimload.Logger) *Orchestrator {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Orchestrator{db: db, logger: logger}
}

// MergeAll runs the upsert procedures strictly in order: providers, then
// patients, then claims. Claims merge last because the procedure resolves
// natural keys against the freshly merged Provider and Patient rows, and it
// receives the run ID so rejected claims are tagged to this run. The first
// failure stops the sequence and is returned wrapping claimload.ErrMergeFailed.
func (o *Orchestrator) MergeAll(ctx context.Context, runID int64) error {
	steps := []struct {
		proc string
		call string
		args []any
	}{
		{claimload.ProcUpsertProvider, fmt.Sprintf("CALL %s()", claimload.ProcUpsertProvider), nil},
		{claimload.ProcUpsertPatient, fmt.Sprintf("CALL %s()", claimload.ProcUpsertPatient), nil},
		{claimload.ProcUpsertClaim, fmt.Sprintf("CALL %s($1)", claimload.ProcUpsertClaim), []any{runID}},
	}

	for _, step := range steps {
		o.logger.Verbose("Executing %s", step.proc)
		if _, err := o.db.Exec(ctx, step.call, step.args...); err != nil {
			return fmt.Errorf("%s: %w (%w)", step.proc, err, claimload.ErrMergeFailed)
		}
		o.logger.Info("Merged via %s", step.proc)
	}
	return nil
}
