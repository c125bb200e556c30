package billing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("techno", func(fl validator.FieldLevel) bool {
		return Techno(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("invoice_status", func(fl validator.FieldLevel) bool {
		return InvoiceStatus(fl.Field().String()).IsValid()
	})

	return v
}

// validateStruct runs the struct tags of s and reports every failing field.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %v", ErrValidation, messages)
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
