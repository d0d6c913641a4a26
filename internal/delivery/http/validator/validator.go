// Package validator adapts go-playground/validator to Echo's Validator hook.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps the validator instance used for request binding.
type CustomValidator struct {
	validator *playground.Validate
}

// New creates the Echo request validator.
func New() *CustomValidator {
	return &CustomValidator{
		validator: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Struct tag violations surface as a 400
// so the error handler renders them as client errors.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
