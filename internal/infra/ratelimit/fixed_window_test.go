package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(windowSize time.Duration, maxRequests int, start time.Time) (*FixedWindowLimiter, *time.Time) {
	limiter := NewFixedWindowLimiter(windowSize, maxRequests)
	current := start
	limiter.now = func() time.Time { return current }

	return limiter, &current
}

func TestFixedWindowLimiter_AllowsUpToLimit(t *testing.T) {
	t.Parallel()

	limiter, _ := newTestLimiter(time.Minute, 3, time.Unix(1000, 0))

	for i := 0; i < 3; i++ {
		decision := limiter.Allow("10.0.0.1")
		require.True(t, decision.Allowed)
		assert.Equal(t, 2-i, decision.Remaining)
	}

	decision := limiter.Allow("10.0.0.1")
	assert.False(t, decision.Allowed)
	assert.Zero(t, decision.Remaining)
}

func TestFixedWindowLimiter_RetryAfterIsRemainingWindow(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	limiter, current := newTestLimiter(time.Minute, 1, start)

	require.True(t, limiter.Allow("client").Allowed)

	*current = start.Add(40 * time.Second)
	decision := limiter.Allow("client")
	require.False(t, decision.Allowed)
	assert.Equal(t, 20*time.Second, decision.RetryAfter)
}

func TestFixedWindowLimiter_WindowResets(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	limiter, current := newTestLimiter(time.Minute, 1, start)

	require.True(t, limiter.Allow("client").Allowed)
	require.False(t, limiter.Allow("client").Allowed)

	*current = start.Add(time.Minute)
	assert.True(t, limiter.Allow("client").Allowed, "a new window starts after the old one elapses")
}

func TestFixedWindowLimiter_IdentitiesAreIndependent(t *testing.T) {
	t.Parallel()

	limiter, _ := newTestLimiter(time.Minute, 1, time.Unix(1000, 0))

	require.True(t, limiter.Allow("alpha").Allowed)
	require.False(t, limiter.Allow("alpha").Allowed)
	assert.True(t, limiter.Allow("beta").Allowed)
}

func TestFixedWindowLimiter_SweepRemovesStaleWindows(t *testing.T) {
	t.Parallel()

	start := time.Unix(1000, 0)
	limiter, current := newTestLimiter(time.Minute, 5, start)

	limiter.Allow("stale")
	*current = start.Add(30 * time.Second)
	limiter.Allow("fresh")

	removed := limiter.removeStale(start.Add(70 * time.Second))
	assert.Equal(t, 1, removed)

	limiter.mu.Lock()
	_, staleKept := limiter.windows["stale"]
	_, freshKept := limiter.windows["fresh"]
	limiter.mu.Unlock()
	assert.False(t, staleKept)
	assert.True(t, freshKept)
}

func TestFixedWindowLimiter_ConcurrentAdmission(t *testing.T) {
	t.Parallel()

	const limit = 50

	limiter := NewFixedWindowLimiter(time.Minute, limit)

	var wg sync.WaitGroup

	var admitted atomic.Int64

	for range limit * 2 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if limiter.Allow("client").Allowed {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(limit), admitted.Load(), "exactly the budget is admitted under contention")
}
