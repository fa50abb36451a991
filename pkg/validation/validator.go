package validation

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator - обёртка для использования в Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New создаёт и настраивает валидатор.
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{validator: v}
}
