package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator to implement echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// SettingsRequest is the preferences form. Empty fields keep the current value.
type SettingsRequest struct {
	Locale string `form:"locale" validate:"omitempty,oneof=en fr"`
	Theme  string `form:"theme" validate:"omitempty,oneof=light dark consortium"`
}
