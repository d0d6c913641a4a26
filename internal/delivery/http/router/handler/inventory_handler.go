package handler

import (
	"net/http"
	"strconv"

	"pulse/internal/delivery/http/middleware"
	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InventoryHandler holds dependencies for inventory forecast handlers.
type InventoryHandler struct {
	uc usecase.InventoryUsecase
}

// NewInventoryHandler is the constructor for InventoryHandler, injected by Fx.
func NewInventoryHandler(uc usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ForecastStock returns a product's stock depletion projection.
func (h *InventoryHandler) ForecastStock(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 0 {
			return response.BindingError(c, "INVALID_INPUT", "Invalid days parameter")
		}
	}

	forecast, err := h.uc.ForecastStock(c.Request().Context(), productID, days)
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, forecast, "Stock forecast generated")
}

// AnalyzeSeasonality returns a product's sales pattern by weekday and hour.
func (h *InventoryHandler) AnalyzeSeasonality(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	pattern, err := h.uc.AnalyzeSeasonality(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, pattern, "Seasonality analysis generated")
}

// RankSuppliers returns the composite supplier ranking.
func (h *InventoryHandler) RankSuppliers(c echo.Context) error {
	ranking, err := h.uc.RankSuppliers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, ranking, "Supplier ranking generated")
}

// GenerateReorderSuggestions returns reorder suggestions for low-stock
// products, sorted by urgency.
func (h *InventoryHandler) GenerateReorderSuggestions(c echo.Context) error {
	suggestions, err := h.uc.GenerateReorderSuggestions(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, suggestions, "Reorder suggestions generated")
}
