package middleware

import (
	"net/http"
	"strconv"

	"pulse/internal/delivery/http/response"
	"pulse/internal/infra/ratelimit"

	"github.com/labstack/echo/v4"
)

// KeyFunc derives the rate-limit identity for a request.
type KeyFunc func(c echo.Context) string

// RateLimitMiddleware applies the fixed-window limiter per client identity.
type RateLimitMiddleware struct {
	limiter *ratelimit.FixedWindowLimiter
	keyFunc KeyFunc
}

// NewRateLimitMiddleware creates a new rate limit middleware keyed by client IP
func NewRateLimitMiddleware(limiter *ratelimit.FixedWindowLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		keyFunc: func(c echo.Context) string { return c.RealIP() },
	}
}

// WithKeyFunc replaces the identity extractor, for deployments that key on a
// header or token instead of the client IP.
func (m *RateLimitMiddleware) WithKeyFunc(fn KeyFunc) *RateLimitMiddleware {
	if fn != nil {
		m.keyFunc = fn
	}

	return m
}

// Handle rejects requests above the per-window budget with 429 and a
// Retry-After header.
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		decision := m.limiter.Allow(m.keyFunc(c))

		c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(m.limiter.Limit()))
		c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(decision.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))

			return response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests", "retry after "+strconv.Itoa(retryAfter)+"s")
		}

		return next(c)
	}
}
