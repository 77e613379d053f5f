package retry

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyDial fails with err until the warehouse "comes up" after upAfter
// calls, then succeeds.
type flakyDial struct {
	calls   int
	upAfter int
	err     error
}

func (d *flakyDial) dial(context.Context) error {
	d.calls++
	if d.calls <= d.upAfter {
		return d.err
	}
	return nil
}

var errStarting = &pgconn.PgError{Code: "57P03", Message: "the database system is starting up"}

func newTestExecutor(maxAttempts int) *Executor {
	return NewExecutor(
		NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(maxAttempts,
			WithInitialDelay(time.Millisecond),
			WithJitter(0),
		),
	)
}

func TestNewExecutor_NilDeps(t *testing.T) {
	assert.Panics(t, func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	assert.Panics(t, func() { NewExecutor(NewPostgreSQLErrorClassifier(), nil) })
}

func TestExecute_FirstTrySucceeds(t *testing.T) {
	d := &flakyDial{}

	err := newTestExecutor(3).Execute(context.Background(), d.dial)

	require.NoError(t, err)
	assert.Equal(t, 1, d.calls)
}

func TestExecute_RecoversWhenWarehouseComesUp(t *testing.T) {
	d := &flakyDial{upAfter: 3, err: errStarting}

	err := newTestExecutor(5).Execute(context.Background(), d.dial)

	require.NoError(t, err)
	assert.Equal(t, 4, d.calls)
}

func TestExecute_FatalErrorNotRedialed(t *testing.T) {
	// A missing staging relation is a deploy problem; hammering the
	// warehouse will not create it.
	d := &flakyDial{upAfter: 99, err: &pgconn.PgError{Code: "42P01", Message: `relation "StgClaim" does not exist`}}

	err := newTestExecutor(5).Execute(context.Background(), d.dial)

	require.Error(t, err)
	assert.Equal(t, 1, d.calls)
}

func TestExecute_BudgetExhausted(t *testing.T) {
	d := &flakyDial{upAfter: 99, err: errStarting}

	err := newTestExecutor(3).Execute(context.Background(), d.dial)

	require.Error(t, err)
	assert.ErrorIs(t, err, errStarting)
	// First try plus three retries.
	assert.Equal(t, 4, d.calls)
}

func TestExecute_ZeroBudgetFailsFast(t *testing.T) {
	d := &flakyDial{upAfter: 99, err: errStarting}

	err := newTestExecutor(0).Execute(context.Background(), d.dial)

	require.Error(t, err)
	assert.Equal(t, 1, d.calls)
}

func TestExecute_TransientThenFatalStops(t *testing.T) {
	fatal := &pgconn.PgError{Code: "42501", Message: "permission denied"}
	calls := 0
	op := func(context.Context) error {
		calls++
		if calls < 3 {
			return errStarting
		}
		return fatal
	}

	err := newTestExecutor(10).Execute(context.Background(), op)

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 3, calls)
}

func TestExecute_ContextCancelledDuringWait(t *testing.T) {
	executor := NewExecutor(
		NewPostgreSQLErrorClassifier(),
		NewExponentialBackoff(10, WithInitialDelay(time.Minute)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	d := &flakyDial{upAfter: 99, err: errStarting}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := executor.Execute(ctx, d.dial)

	assert.ErrorIs(t, err, context.Canceled)
	// The wait between attempts is a minute; cancellation must cut it short
	// after the single initial try.
	assert.Equal(t, 1, d.calls)
}
