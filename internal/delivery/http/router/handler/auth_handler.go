package handler

import (
	"net/http"

	"pulse/internal/delivery/http/response"
	"pulse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for operator authentication handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the operator login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	tokens, err := h.uc.Login(c.Request().Context(), input.Email, input.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokens, "Login successful")
}
