package retry

import (
	"context"
	"time"

	"github.com/vvka-141/claimload/pkg/claimload"
)

// Executor runs an operation and retries it for as long as its failures
// stay transient. The loader uses it to bring up the warehouse connection
// ahead of a run; the run itself is never replayed.
//
// Thread-Safety: safe for concurrent Execute calls.
type Executor struct {
	classifier claimload.ErrorClassifier
	strategy   claimload.BackoffStrategy
}

// NewExecutor creates an Executor. Panics on nil dependencies, the same
// contract as the service constructors.
func NewExecutor(classifier claimload.ErrorClassifier, strategy claimload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// Execute runs op, waiting out the backoff between attempts. It stops on
// success, on the first non-transient error, when the retry budget is
// spent, or when ctx dies during a wait. The returned error is always the
// operation's own except for context errors raised while waiting.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if budget := e.strategy.MaxAttempts(); budget >= 0 && attempt >= budget {
			break
		}

		timer := time.NewTimer(e.strategy.NextDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
