package handler

import (
	"net/http"

	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FraudHandler holds dependencies for fraud scoring handlers.
type FraudHandler struct {
	uc usecase.FraudUsecase
}

// NewFraudHandler is the constructor for FraudHandler, injected by Fx.
func NewFraudHandler(uc usecase.FraudUsecase) *FraudHandler {
	return &FraudHandler{uc: uc}
}

// ScoreTransaction scores one transaction and persists the fraud annotation.
func (h *FraudHandler) ScoreTransaction(c echo.Context) error {
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction ID")
	}

	result, err := h.uc.ScoreTransactionByID(c.Request().Context(), transactionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Transaction scored")
}
