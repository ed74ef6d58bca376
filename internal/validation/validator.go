// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and includes custom validation rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	idRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// init registers custom validation rules with the validator instance.
func init() {
	// Report JSON field names instead of Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}

		return name
	})

	rules := map[string]validator.Func{
		// custom_id allows letters, numbers, hyphens and underscores only.
		"custom_id": func(fl validator.FieldLevel) bool {
			if fl.Field().String() == "" {
				// Allow empty strings to be handled by the 'required' tag.
				return true
			}

			return idRegexp.MatchString(fl.Field().String())
		},
		// week_key accepts an existing ISO week written as YYYY-WNN.
		"week_key": func(fl validator.FieldLevel) bool {
			if fl.Field().String() == "" {
				return true
			}

			_, _, err := capacity.ParseWeekKey(fl.Field().String())

			return err == nil
		},
	}

	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a programming error.
			panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
		}
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrors))

	for _, fe := range fieldErrors {
		var message string

		switch fe.Tag() {
		case "custom_id":
			message = fmt.Sprintf(
				"field '%s' must contain only letters, numbers, hyphens, and underscores",
				fe.Field(),
			)
		case "week_key":
			message = fmt.Sprintf("field '%s' must be an ISO week like 2025-W07", fe.Field())
		case "oneof":
			message = fmt.Sprintf("field '%s' must be one of: %s", fe.Field(), fe.Param())
		default:
			// Default message for other standard validation tags like 'required', 'min', 'max', etc.
			message = fmt.Sprintf(
				"field '%s' failed on the '%s' tag",
				fe.Field(),
				fe.Tag(),
			)
		}

		messages = append(messages, message)
	}

	return &ValidationError{Errors: messages}
}
