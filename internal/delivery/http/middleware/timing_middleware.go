package middleware

import (
	"context"
	"log/slog"
	"time"

	"pulse/config"

	"github.com/labstack/echo/v4"
)

// defaultSlowRequestThreshold is the latency above which a request is
// flagged as slow when no threshold is configured.
const defaultSlowRequestThreshold = time.Second

// TimingMiddleware measures per-request latency and flags slow requests.
type TimingMiddleware struct {
	logger        *slog.Logger
	debug         bool
	slowThreshold time.Duration
}

// NewTimingMiddleware creates a new timing middleware
func NewTimingMiddleware(logger *slog.Logger, config *config.Config) *TimingMiddleware {
	threshold := config.HTTP.SlowRequestThreshold
	if threshold <= 0 {
		threshold = defaultSlowRequestThreshold
	}

	return &TimingMiddleware{
		logger:        logger,
		debug:         config.Env.Debug,
		slowThreshold: threshold,
	}
}

// Handle times the request and logs slow ones at warn level. In debug mode
// every request is logged.
func (m *TimingMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		// The header must be staged before the first write commits the response.
		c.Response().Before(func() {
			c.Response().Header().Set("X-Response-Time", time.Since(start).String())
		})

		err := next(c)

		latency := time.Since(start)
		if latency > m.slowThreshold {
			m.logRequest(c, slog.LevelWarn, "Slow request", start, latency, err)
		} else if m.debug {
			m.logRequest(c, slog.LevelDebug, "HTTP Request", start, latency, err)
		}

		return err
	}
}

// logRequest logs request details
func (m *TimingMiddleware) logRequest(c echo.Context, level slog.Level, msg string, start time.Time, latency time.Duration, err error) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", latency),
		slog.String("latency_human", latency.String()),
		slog.String("remote_ip", c.RealIP()),
		slog.String("time", start.Format(time.RFC3339)),
	}

	// If there are query parameters, log them too
	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	// If there's an error, log error details
	if err != nil {
		fields = append(fields, slog.String("error", err.Error()))
	}

	m.logger.LogAttrs(context.Background(), level, msg, fields...)
}
