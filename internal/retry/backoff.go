package retry

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff spaces reconnect attempts geometrically: each wait is
// multiplier times the previous one, capped at maxDelay. Jitter spreads the
// waits so parallel loader sessions do not redial the warehouse in lockstep.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int
	jitter       float64        // fraction of the delay; 0.1 means +-10%
	randFloat    func() float64 // [0,1); fixed in tests for exact delays
}

// BackoffOption adjusts one knob on an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the wait before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

// WithMaxDelay caps the wait between retries.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

// WithMultiplier sets the growth factor between waits.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the randomization fraction; 0 disables jitter.
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = j }
}

// WithJitterFunc replaces the randomness source, for deterministic tests.
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.randFloat = f }
}

// NewExponentialBackoff returns a strategy allowing maxAttempts retries
// after the first try; negative means unbounded, zero means fail fast.
// Defaults: 100ms initial wait, 30s cap, doubling, 10% jitter.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns the wait before retry number attempt (zero-based).
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	d := float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt))
	if limit := float64(b.maxDelay); d > limit {
		d = limit
	}
	if b.jitter > 0 {
		rnd := b.randFloat
		if rnd == nil {
			rnd = rand.Float64
		}
		// Spread across [d*(1-jitter), d*(1+jitter)].
		d *= 1 + b.jitter*(2*rnd()-1)
	}
	return time.Duration(d)
}

// MaxAttempts reports the retry budget after the first try.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}
