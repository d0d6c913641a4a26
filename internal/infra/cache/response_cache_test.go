package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache_GetSet(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)

	_, ok := c.Get("analytics:rfm")
	assert.False(t, ok)

	c.Set("analytics:rfm", "segments")

	value, ok := c.Get("analytics:rfm")
	require.True(t, ok)
	assert.Equal(t, "segments", value)
}

func TestResponseCache_Expiry(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)
	c.SetWithTTL("inventory:forecast", 42, 10*time.Millisecond)

	_, ok := c.Get("inventory:forecast")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get("inventory:forecast")
	assert.False(t, ok)
	assert.Zero(t, c.Stats().Keys, "expired entry should be removed on access")
}

func TestResponseCache_Stats(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)

	assert.Zero(t, c.Stats().HitRate, "hit rate with no samples is 0")

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 1e-9)
	assert.Equal(t, 1, stats.Keys)
}

func TestResponseCache_InvalidatePattern(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)
	c.Set("analytics:rfm", 1)
	c.Set("analytics:churn", 2)
	c.Set("inventory:forecast:123", 3)

	removed := c.InvalidatePattern("analytics:")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Stats().Keys)

	_, ok := c.Get("inventory:forecast:123")
	assert.True(t, ok)
}

func TestResponseCache_Flush(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")

	c.Flush()

	stats := c.Stats()
	assert.Zero(t, stats.Keys)
	assert.Equal(t, int64(1), stats.Hits, "flush preserves counters")
}

func TestResponseCache_RemoveExpiredSweep(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)
	c.SetWithTTL("stale", 1, 5*time.Millisecond)
	c.Set("fresh", 2)

	time.Sleep(10 * time.Millisecond)

	removed := c.removeExpired(time.Now())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Stats().Keys)
}

func TestResponseCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewResponseCache(time.Minute)

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(2)

		key := "analytics:churn:" + strconv.Itoa(i)

		go func() {
			defer wg.Done()
			c.Set(key, i)
		}()
		go func() {
			defer wg.Done()
			c.Get(key)
			c.InvalidatePattern("churn")
		}()
	}
	wg.Wait()

	c.Flush()
	assert.Zero(t, c.Stats().Keys)
}
