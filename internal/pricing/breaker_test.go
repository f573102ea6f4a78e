package pricing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestBreaker(t *testing.T) (*Breaker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)}
	return NewBreaker(10, 5*time.Minute, 5*time.Minute, clock.Now, nil), clock
}

func TestBreakerAdmitsUntilThresholdExceeded(t *testing.T) {
	b, _ := newTestBreaker(t)

	for i := 0; i < 10; i++ {
		b.RecordOutcome(OutcomeTransientFailure)
		admitted, _ := b.Admit()
		require.True(t, admitted, "failure %d must not trip the breaker", i+1)
	}

	b.RecordOutcome(OutcomeTransientFailure)
	admitted, until := b.Admit()
	assert.False(t, admitted)
	assert.False(t, until.IsZero())
	assert.True(t, b.Tripped())
}

func TestBreakerResetsAfterCooldown(t *testing.T) {
	b, clock := newTestBreaker(t)

	for i := 0; i < 11; i++ {
		b.RecordOutcome(OutcomeTransientFailure)
	}
	admitted, until := b.Admit()
	require.False(t, admitted)

	clock.Advance(5*time.Minute - time.Second)
	admitted, _ = b.Admit()
	assert.False(t, admitted, "still inside the cool-down")

	clock.Advance(2 * time.Second)
	admitted, _ = b.Admit()
	assert.True(t, admitted)
	assert.False(t, b.Tripped())
	assert.True(t, clock.Now().After(until))

	// One more failure starts a fresh window instead of re-tripping.
	b.RecordOutcome(OutcomeTransientFailure)
	admitted, _ = b.Admit()
	assert.True(t, admitted)
}

func TestBreakerIgnoresSuccessAndNotFound(t *testing.T) {
	b, _ := newTestBreaker(t)

	for i := 0; i < 100; i++ {
		b.RecordOutcome(OutcomeSuccess)
		b.RecordOutcome(OutcomeNotFound)
	}
	admitted, _ := b.Admit()
	assert.True(t, admitted)
	assert.False(t, b.Tripped())
}

func TestBreakerWindowExpiryResetsCounter(t *testing.T) {
	b, clock := newTestBreaker(t)

	for i := 0; i < 10; i++ {
		b.RecordOutcome(OutcomeTransientFailure)
	}

	// The stale window is discarded, so this failure counts as the first
	// of a new one.
	clock.Advance(5*time.Minute + time.Second)
	b.RecordOutcome(OutcomeTransientFailure)

	admitted, _ := b.Admit()
	assert.True(t, admitted)

	for i := 0; i < 10; i++ {
		b.RecordOutcome(OutcomeTransientFailure)
	}
	admitted, _ = b.Admit()
	assert.False(t, admitted)
}

func TestBreakerAdmitIsReadOnlyWhenClosed(t *testing.T) {
	b, _ := newTestBreaker(t)

	for i := 0; i < 5; i++ {
		b.RecordOutcome(OutcomeTransientFailure)
	}
	for i := 0; i < 3; i++ {
		admitted, _ := b.Admit()
		require.True(t, admitted)
	}

	// The earlier failures still count toward the same window.
	for i := 0; i < 6; i++ {
		b.RecordOutcome(OutcomeTransientFailure)
	}
	admitted, _ := b.Admit()
	assert.False(t, admitted)
}

func TestBreakerConcurrentRecordAndAdmit(t *testing.T) {
	b := NewBreaker(10, time.Hour, time.Hour, nil, nil)

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				b.RecordOutcome(OutcomeTransientFailure)
				b.Admit()
				b.Tripped()
			}
		}()
	}
	wg.Wait()

	// Far more than threshold failures landed inside one window, so the
	// breaker must have tripped exactly as it would under serial use.
	admitted, until := b.Admit()
	assert.False(t, admitted)
	assert.False(t, until.IsZero())
	assert.True(t, b.Tripped())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "transient_failure", OutcomeTransientFailure.String())
}
