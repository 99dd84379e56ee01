package handlers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/homeservices/site/internal/booking"
	"github.com/homeservices/site/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// RegisterValidators adds the booking form tags to gin's validator.
// Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("servicetype", func(fl validator.FieldLevel) bool {
			return models.IsValidServiceType(fl.Field().String())
		}); err != nil {
			return
		}
		err = v.RegisterValidation("datetimelocal", func(fl validator.FieldLevel) bool {
			return booking.IsScheduledAtFormat(fl.Field().String())
		})
	})
	return err
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var result []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			result = append(result, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return result
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "servicetype":
		return fe.Field() + " must be one of the offered services"
	case "datetimelocal":
		return fe.Field() + " must be a date and time like 2006-01-02T15:04"
	default:
		return fe.Field() + " is invalid"
	}
}
