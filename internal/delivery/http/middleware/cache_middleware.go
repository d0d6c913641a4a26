package middleware

import (
	"net/http"
	"time"

	"pulse/internal/delivery/http/response"
	"pulse/internal/infra/cache"

	"github.com/labstack/echo/v4"
)

// CacheMiddleware serves repeated GET requests from the response cache.
type CacheMiddleware struct {
	cache *cache.ResponseCache
}

// NewCacheMiddleware creates a new cache middleware
func NewCacheMiddleware(responseCache *cache.ResponseCache) *CacheMiddleware {
	return &CacheMiddleware{cache: responseCache}
}

type cachedResponse struct {
	Status  int
	Data    any
	Message string
}

// Handle returns a middleware caching successful GET responses under the
// given TTL. Handlers opt in by rendering through Cacheable; anything else
// passes through uncached.
func (m *CacheMiddleware) Handle(ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cacheKey(c)
			if cached, ok := m.cache.Get(key); ok {
				if resp, ok := cached.(cachedResponse); ok {
					c.Response().Header().Set("X-Cache", "HIT")

					return response.Success(c, resp.Status, resp.Data, resp.Message)
				}
			}

			if err := next(c); err != nil {
				return err
			}

			if resp, ok := c.Get(cacheablePayloadKey).(cachedResponse); ok {
				m.cache.SetWithTTL(key, resp, ttl)
				c.Response().Header().Set("X-Cache", "MISS")
			}

			return nil
		}
	}
}

const cacheablePayloadKey = "cacheablePayload"

// Cacheable renders a successful response and marks it for caching by the
// cache middleware. Handlers on uncached routes can use it freely; the mark
// is ignored without the middleware.
func Cacheable(c echo.Context, status int, data any, message string) error {
	c.Set(cacheablePayloadKey, cachedResponse{Status: status, Data: data, Message: message})

	return response.Success(c, status, data, message)
}

func cacheKey(c echo.Context) string {
	req := c.Request()
	key := req.Method + ":" + req.URL.Path
	if req.URL.RawQuery != "" {
		key += "?" + req.URL.RawQuery
	}

	return key
}
