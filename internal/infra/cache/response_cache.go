// Package cache provides an in-process TTL cache for expensive analytical
// responses, with hit-rate accounting for the operations dashboard.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pulse/config"

	"go.uber.org/fx"
)

const (
	defaultTTL           = 5 * time.Minute
	defaultSweepInterval = time.Minute
)

// Stats is a point-in-time snapshot of cache effectiveness counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	HitRate float64 `json:"hit_rate"`
	Keys    int     `json:"keys"`
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// ResponseCache is a concurrency-safe TTL cache keyed by request identity.
// Expired entries count as misses on read and are removed lazily on access
// plus periodically by the janitor.
type ResponseCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	defaultTTL time.Duration

	hits   int64
	misses int64
	sets   int64
}

// Params holds dependencies for ResponseCache, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates a ResponseCache and starts its janitor under the Fx lifecycle.
func New(params Params) *ResponseCache {
	ttl := defaultTTL
	sweep := defaultSweepInterval
	if cfg := params.Config.Cache; cfg != nil {
		if cfg.DefaultTTL > 0 {
			ttl = cfg.DefaultTTL
		}
		if cfg.SweepInterval > 0 {
			sweep = cfg.SweepInterval
		}
	}

	c := &ResponseCache{
		entries:    make(map[string]cacheEntry),
		defaultTTL: ttl,
	}

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go c.runJanitor(janitorCtx, params.Logger, sweep)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelJanitor()

			return nil
		},
	})

	return c
}

// NewResponseCache creates a bare cache without lifecycle wiring, for tests
// and embedded use.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &ResponseCache{
		entries:    make(map[string]cacheEntry),
		defaultTTL: ttl,
	}
}

// Get returns the cached value for key. A missing or expired entry counts as
// a miss; expired entries are removed on access.
func (c *ResponseCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && time.Now().Before(entry.expiresAt) {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()

		return entry.value, true
	}

	c.mu.Lock()
	if ok {
		// Re-check under the write lock so a concurrent Set is not discarded.
		if current, still := c.entries[key]; still && !time.Now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.misses++
	c.mu.Unlock()

	return nil, false
}

// Set stores value under key with the cache's default TTL.
func (c *ResponseCache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *ResponseCache) SetWithTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.sets++
	c.mu.Unlock()
}

// InvalidatePattern removes every key containing the given substring and
// returns how many entries were dropped.
func (c *ResponseCache) InvalidatePattern(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

// Flush removes every entry. Counters are preserved.
func (c *ResponseCache) Flush() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Stats returns a snapshot of the effectiveness counters. The hit rate is 0
// before any read has been observed.
func (c *ResponseCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Sets:   c.sets,
		Keys:   len(c.entries),
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}

	return stats
}

// removeExpired drops entries whose TTL has elapsed and returns the count.
func (c *ResponseCache) removeExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	return removed
}

func (c *ResponseCache) runJanitor(ctx context.Context, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := c.removeExpired(now); removed > 0 && logger != nil {
				logger.Debug("Response cache sweep completed",
					slog.Int("removed", removed),
				)
			}
		}
	}
}

// Module provides the cache FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
