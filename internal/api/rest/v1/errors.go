package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sitebill/sitebill/internal/domain/billing"
)

// statusFor maps a service error to its HTTP status code
func statusFor(err error) int {
	switch {
	case errors.Is(err, billing.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, billing.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, billing.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, billing.ErrInvalidTransition), errors.Is(err, billing.ErrNotEditable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as an ErrorResponse prefixed with action
func abortWithError(ctx *gin.Context, action string, err error) {
	ctx.AbortWithStatusJSON(statusFor(err), ErrorResponse{
		Message: fmt.Sprintf("%s: %v", action, err),
	})
}

// abortBadRequest rejects a malformed or invalid request
func abortBadRequest(ctx *gin.Context, format string, args ...interface{}) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Message: fmt.Sprintf(format, args...),
	})
}

func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%v", messages)
	}
	return err
}
