package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vvka-141/claimload/internal/blob"
	"github.com/vvka-141/claimload/internal/checksum"
	"github.com/vvka-141/claimload/internal/frame"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// runLedger is the slice of the ledger the load service needs.
type runLedger interface {
	Start(ctx context.Context) (int64, error)
	RecordCounts(ctx context.Context, runID int64, staging, final claimload.EntityCounts, rejectTotal int64) error
	Finish(ctx context.Context, runID int64, status claimload.RunStatus) error
	RejectCount(ctx context.Context, runID int64) (int64, error)
}

// stagingLoader is the slice of the staging loader the load service needs.
type stagingLoader interface {
	TruncateAll(ctx context.Context) error
	Load(ctx context.Context, table string, f *frame.Frame) (int64, error)
	Count(ctx context.Context, table string) (int64, error)
}

// merger executes the ordered upsert procedures.
type merger interface {
	MergeAll(ctx context.Context, runID int64) error
}

// finalizeTimeout bounds the FAILED finalize issued after the run's own
// context is already dead.
const finalizeTimeout = 30 * time.Second

// LoadService orchestrates one complete load run: fetch the landing CSVs,
// stage them, merge them, and record the outcome in the run ledger.
//
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
// The staging tables are shared mutable state; runs must not overlap.
type LoadService struct {
	store     blob.Store
	ledger    runLedger
	staging   stagingLoader
	merger    merger
	logger    claimload.Logger
	container string
}

// NewLoadService creates a LoadService with all dependencies injected.
// Panics on nil dependencies: wiring mistakes should fail at startup, not
// after a run row has already been opened.
func NewLoadService(
	store blob.Store,
	ledger runLedger,
	staging stagingLoader,
	merger merger,
	logger claimload.Logger,
	container string,
) *LoadService {
	if store == nil {
		panic("store cannot be nil")
	}
	if ledger == nil {
		panic("ledger cannot be nil")
	}
	if staging == nil {
		panic("staging cannot be nil")
	}
	if merger == nil {
		panic("merger cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if container == "" {
		container = claimload.DefaultContainer
	}

	return &LoadService{
		store:     store,
		ledger:    ledger,
		staging:   staging,
		merger:    merger,
		logger:    logger,
		container: container,
	}
}

// Run executes the full load protocol and returns a report of what happened.
//
// The ledger row is opened before any other work and always closed: SUCCESS
// after the counts are recorded, FAILED on any error. Failures after the row
// is opened still return the original error; a secondary failure while
// finalizing the row is logged, never allowed to mask the cause.
func (s *LoadService) Run(ctx context.Context) (*claimload.RunReport, error) {
	started := time.Now()

	runID, err := s.ledger.Start(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Verbose("Opened ledger row %d", runID)

	report, err := s.execute(ctx, runID)
	if err != nil {
		// The failure may be the context itself (timeout expiry, Ctrl+C).
		// The ledger row must still be closed, so finalize on a context
		// detached from the cancelled one.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
		defer cancel()
		if finishErr := s.ledger.Finish(fctx, runID, claimload.StatusFailed); finishErr != nil {
			s.logger.Error("Failed to mark run %d as FAILED: %v", runID, finishErr)
		}
		return nil, err
	}

	if err := s.ledger.Finish(ctx, runID, claimload.StatusSuccess); err != nil {
		return nil, err
	}

	report.Status = claimload.StatusSuccess
	report.Elapsed = time.Since(started)
	s.logger.Info("Run %d complete. Final claim rows: %d. Rejects this run: %d",
		runID, report.Final.Claim, report.RejectTotal)
	return report, nil
}

// execute performs everything between ledger open and ledger close.
func (s *LoadService) execute(ctx context.Context, runID int64) (*claimload.RunReport, error) {
	frames := make(map[string]*frame.Frame, len(loadOrder))
	for _, e := range loadOrder {
		f, err := s.fetch(ctx, e)
		if err != nil {
			return nil, err
		}
		frames[e.name] = f
	}

	// All three feeds parsed and validated; only now touch the warehouse.
	if err := s.staging.TruncateAll(ctx); err != nil {
		return nil, err
	}

	for _, e := range loadOrder {
		if _, err := s.staging.Load(ctx, e.stagingTable, frames[e.name]); err != nil {
			return nil, err
		}
	}

	stagingCounts, err := s.countTables(ctx, func(e entity) string { return e.stagingTable })
	if err != nil {
		return nil, err
	}

	if err := s.merger.MergeAll(ctx, runID); err != nil {
		return nil, err
	}

	finalCounts, err := s.countTables(ctx, func(e entity) string { return e.finalTable })
	if err != nil {
		return nil, err
	}

	rejectTotal, err := s.ledger.RejectCount(ctx, runID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.RecordCounts(ctx, runID, stagingCounts, finalCounts, rejectTotal); err != nil {
		return nil, err
	}

	return &claimload.RunReport{
		RunID:       runID,
		Staging:     stagingCounts,
		Final:       finalCounts,
		RejectTotal: rejectTotal,
	}, nil
}

// fetch downloads one feed and turns it into a coerced, column-exact frame.
func (s *LoadService) fetch(ctx context.Context, e entity) (*frame.Frame, error) {
	data, err := s.store.Get(ctx, s.container, e.object)
	if err != nil {
		return nil, err
	}
	s.logger.Verbose("Downloaded %s/%s (%d bytes, sha256 %s)",
		s.container, e.object, len(data), checksum.Short(data))

	f, err := frame.FromCSV(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.object, err)
	}

	f = f.RepairSingleColumn()

	if err := f.Validate(e.columns); err != nil {
		return nil, fmt.Errorf("%s: %w", e.object, err)
	}

	f, err = f.Select(e.columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.object, err)
	}

	return f.Coerce(e.types), nil
}

// countTables collects one count per entity using the given table selector.
func (s *LoadService) countTables(ctx context.Context, table func(entity) string) (claimload.EntityCounts, error) {
	var counts claimload.EntityCounts
	for _, e := range loadOrder {
		n, err := s.staging.Count(ctx, table(e))
		if err != nil {
			return claimload.EntityCounts{}, err
		}
		switch e.name {
		case "provider":
			counts.Provider = n
		case "patient":
			counts.Patient = n
		case "claim":
			counts.Claim = n
		}
	}
	return counts, nil
}
