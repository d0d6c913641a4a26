package handler

import (
	"net/http"

	"pulse/internal/delivery/http/response"
	"pulse/internal/infra/cache"

	"github.com/labstack/echo/v4"
)

// CacheHandler exposes cache observability and administration endpoints.
type CacheHandler struct {
	cache *cache.ResponseCache
}

// NewCacheHandler is the constructor for CacheHandler, injected by Fx.
func NewCacheHandler(responseCache *cache.ResponseCache) *CacheHandler {
	return &CacheHandler{cache: responseCache}
}

// Stats returns the cache effectiveness counters.
func (h *CacheHandler) Stats(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.cache.Stats(), "Cache statistics")
}

// Flush removes every cached entry.
func (h *CacheHandler) Flush(c echo.Context) error {
	h.cache.Flush()

	return response.Success(c, http.StatusOK, map[string]string{
		"status": "flushed",
	}, "Cache flushed")
}

// Invalidate removes cached entries whose key contains the given pattern.
func (h *CacheHandler) Invalidate(c echo.Context) error {
	pattern := c.QueryParam("pattern")
	if pattern == "" {
		return response.BindingError(c, "INVALID_INPUT", "Missing pattern parameter")
	}

	removed := h.cache.InvalidatePattern(pattern)

	return response.Success(c, http.StatusOK, map[string]int{
		"removed": removed,
	}, "Cache entries invalidated")
}
