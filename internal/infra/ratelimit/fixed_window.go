// Package ratelimit provides a fixed-window request limiter keyed by client
// identity.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pulse/config"

	"go.uber.org/fx"
)

const (
	defaultWindow        = time.Minute
	defaultMaxRequests   = 120
	defaultSweepInterval = 5 * time.Minute
)

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed    bool          // Whether the request may proceed.
	Remaining  int           // Admissions left in the current window.
	RetryAfter time.Duration // Time until the window resets; zero when allowed.
}

type window struct {
	start time.Time
	count int
}

// FixedWindowLimiter admits up to MaxRequests per identity per fixed window.
// The counter is incremented before the comparison so concurrent requests
// can never both observe the last free slot.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	windows map[string]*window

	windowSize  time.Duration
	maxRequests int
	now         func() time.Time
}

// Params holds dependencies for FixedWindowLimiter, injected by Fx
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates a FixedWindowLimiter and starts its sweeper under the Fx lifecycle.
func New(params Params) *FixedWindowLimiter {
	windowSize := defaultWindow
	maxRequests := defaultMaxRequests
	sweep := defaultSweepInterval
	if cfg := params.Config.RateLimit; cfg != nil {
		if cfg.Window > 0 {
			windowSize = cfg.Window
		}
		if cfg.MaxRequests > 0 {
			maxRequests = cfg.MaxRequests
		}
		if cfg.SweepInterval > 0 {
			sweep = cfg.SweepInterval
		}
	}

	limiter := NewFixedWindowLimiter(windowSize, maxRequests)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go limiter.runSweeper(sweepCtx, params.Logger, sweep)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelSweep()

			return nil
		},
	})

	return limiter
}

// NewFixedWindowLimiter creates a bare limiter without lifecycle wiring, for
// tests and embedded use.
func NewFixedWindowLimiter(windowSize time.Duration, maxRequests int) *FixedWindowLimiter {
	if windowSize <= 0 {
		windowSize = defaultWindow
	}
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}

	return &FixedWindowLimiter{
		windows:     make(map[string]*window),
		windowSize:  windowSize,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// Limit reports the per-window admission budget.
func (l *FixedWindowLimiter) Limit() int {
	return l.maxRequests
}

// Allow records one request for identity and reports whether it is admitted.
func (l *FixedWindowLimiter) Allow(identity string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	win, ok := l.windows[identity]
	if !ok || now.Sub(win.start) >= l.windowSize {
		win = &window{start: now}
		l.windows[identity] = win
	}

	// Increment first, then compare, so two concurrent requests can never
	// both pass on the final slot.
	win.count++
	if win.count > l.maxRequests {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: l.windowSize - now.Sub(win.start),
		}
	}

	return Decision{
		Allowed:   true,
		Remaining: l.maxRequests - win.count,
	}
}

// removeStale drops windows that ended before now and returns the count.
func (l *FixedWindowLimiter) removeStale(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for identity, win := range l.windows {
		if now.Sub(win.start) >= l.windowSize {
			delete(l.windows, identity)
			removed++
		}
	}

	return removed
}

func (l *FixedWindowLimiter) runSweeper(ctx context.Context, logger *slog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := l.removeStale(now); removed > 0 && logger != nil {
				logger.Debug("Rate limiter sweep completed",
					slog.Int("removed", removed),
				)
			}
		}
	}
}

// Module provides the rate limiter FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(New),
)
