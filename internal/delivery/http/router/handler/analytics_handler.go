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

// AnalyticsHandler holds dependencies for customer analytics handlers.
type AnalyticsHandler struct {
	uc usecase.CustomerAnalyticsUsecase
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.CustomerAnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// SegmentCustomers returns the RFM segmentation report for the whole
// customer population.
func (h *AnalyticsHandler) SegmentCustomers(c echo.Context) error {
	report, err := h.uc.SegmentCustomers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, report, "RFM segmentation generated")
}

// DetectChurnRisk returns customers overdue for their next purchase.
func (h *AnalyticsHandler) DetectChurnRisk(c echo.Context) error {
	report, err := h.uc.DetectChurnRisk(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, report, "Churn risk report generated")
}

// PredictCLV returns one customer's projected lifetime value.
func (h *AnalyticsHandler) PredictCLV(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer ID")
	}

	prediction, err := h.uc.PredictCLV(c.Request().Context(), customerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, prediction, "CLV prediction generated")
}

// Recommend returns product recommendations for one customer.
func (h *AnalyticsHandler) Recommend(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer ID")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.BindingError(c, "INVALID_INPUT", "Invalid limit parameter")
		}
	}

	recommendations, err := h.uc.Recommend(c.Request().Context(), customerID, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return middleware.Cacheable(c, http.StatusOK, recommendations, "Recommendations generated")
}
