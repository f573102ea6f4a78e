package pricing

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Outcome classifies the result of one pricing lookup.
type Outcome int

const (
	// OutcomeSuccess means the lookup returned a price.
	OutcomeSuccess Outcome = iota
	// OutcomeNotFound means the degree does not exist. A 404 is a
	// legitimate negative answer, not a dependency failure.
	OutcomeNotFound
	// OutcomeTransientFailure covers network errors, timeouts, unexpected
	// statuses and malformed payloads.
	OutcomeTransientFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "transient_failure"
	}
}

// Breaker tracks transient failures of the pricing dependency within a rolling
// window and blocks admission for a cool-down once the threshold is exceeded.
// All state transitions happen under one lock, so Admit and RecordOutcome are
// linearizable with respect to each other.
type Breaker struct {
	mu            sync.Mutex
	now           func() time.Time
	threshold     int
	window        time.Duration
	cooldown      time.Duration
	failures      int
	windowStart   time.Time
	cooldownUntil time.Time
	logger        *zap.Logger
}

// NewBreaker constructs a breaker. A nil clock defaults to time.Now; zero
// threshold or durations fall back to 10 failures / 5 minutes.
func NewBreaker(threshold int, window, cooldown time.Duration, now func() time.Time, logger *zap.Logger) *Breaker {
	if threshold <= 0 {
		threshold = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	if cooldown <= 0 {
		cooldown = 5 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{
		now:       now,
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
		logger:    logger,
	}
}

// Admit reports whether a pricing lookup may proceed. While tripped it returns
// false together with the instant the cool-down ends; once that instant has
// passed the breaker resets and re-admits. Absent an active cool-down, Admit
// never changes state.
func (b *Breaker) Admit() (bool, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cooldownUntil.IsZero() {
		return true, time.Time{}
	}
	if b.now().Before(b.cooldownUntil) {
		return false, b.cooldownUntil
	}

	b.logger.Info("pricing breaker reset", zap.Time("cooldown_until", b.cooldownUntil))
	b.cooldownUntil = time.Time{}
	b.failures = 0
	b.windowStart = time.Time{}
	return true, time.Time{}
}

// RecordOutcome feeds the result of a lookup into the failure window. Success
// and NotFound never touch the counter.
func (b *Breaker) RecordOutcome(outcome Outcome) {
	if outcome != OutcomeTransientFailure {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.windowStart.IsZero() || now.Sub(b.windowStart) > b.window {
		b.failures = 1
		b.windowStart = now
	} else {
		b.failures++
	}

	if b.failures > b.threshold {
		b.cooldownUntil = now.Add(b.cooldown)
		b.logger.Warn("pricing breaker tripped",
			zap.Int("failures", b.failures),
			zap.Time("cooldown_until", b.cooldownUntil),
		)
	}
}

// Tripped reports whether a cool-down is currently active.
func (b *Breaker) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.cooldownUntil.IsZero() && b.now().Before(b.cooldownUntil)
}
