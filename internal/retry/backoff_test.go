package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)

	assert.Equal(t, 100*time.Millisecond, b.initialDelay)
	assert.Equal(t, 30*time.Second, b.maxDelay)
	assert.Equal(t, 2.0, b.multiplier)
	assert.Equal(t, 0.1, b.jitter)
	assert.Equal(t, 3, b.MaxAttempts())
}

func TestExponentialBackoff_DelaysDouble(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithJitter(0),
	)

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
	}
	for attempt, expected := range want {
		assert.Equal(t, expected, b.NextDelay(attempt), "attempt %d", attempt)
	}
}

func TestExponentialBackoff_CustomMultiplier(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(1.5),
		WithJitter(0),
	)

	assert.Equal(t, 100*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 150*time.Millisecond, b.NextDelay(1))
	assert.Equal(t, 225*time.Millisecond, b.NextDelay(2))
}

func TestExponentialBackoff_CapsAtMaxDelay(t *testing.T) {
	// The connector's cap keeps a wedged warehouse from stretching waits
	// into hours; every attempt past the knee must sit exactly on the cap.
	b := NewExponentialBackoff(100,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Minute),
		WithJitter(0),
	)

	for attempt := 0; attempt <= 100; attempt++ {
		d := b.NextDelay(attempt)
		assert.LessOrEqual(t, d, time.Minute, "attempt %d", attempt)
		if attempt > 20 {
			assert.Equal(t, time.Minute, d, "attempt %d", attempt)
		}
	}
}

func TestExponentialBackoff_DeterministicJitter(t *testing.T) {
	// With jitter 0.1 the wait lands in [90%, 110%] of the base delay; the
	// edges and the midpoint are exact once the randomness is pinned.
	tests := []struct {
		draw float64
		want time.Duration
	}{
		{0.0, 90 * time.Millisecond},
		{0.5, 100 * time.Millisecond},
		{1.0, 110 * time.Millisecond},
	}
	for _, tt := range tests {
		b := NewExponentialBackoff(3,
			WithInitialDelay(100*time.Millisecond),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return tt.draw }),
		)
		assert.Equal(t, tt.want, b.NextDelay(0), "draw %v", tt.draw)
	}
}

func TestExponentialBackoff_JitterStaysInsideBand(t *testing.T) {
	b := NewExponentialBackoff(3,
		WithInitialDelay(time.Second),
		WithJitter(0.2),
	)

	for i := 0; i < 200; i++ {
		d := b.NextDelay(0)
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}

func TestExponentialBackoff_AttemptBudgets(t *testing.T) {
	// Zero means fail fast, negative means keep dialing until the context
	// gives up. Both pass through untouched.
	for _, budget := range []int{0, 1, 5, -1} {
		assert.Equal(t, budget, NewExponentialBackoff(budget).MaxAttempts())
	}
}
