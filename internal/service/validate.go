package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps form field names to a single human-readable message each.
// It is the shared validation contract every modal form renders from.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// Get returns the message for a field, empty when clean.
func (fe FieldErrors) Get(field string) string { return fe[field] }

// validateStruct runs the validator and converts tag failures into field
// messages keyed by the struct's form names.
func validateStruct(v *validator.Validate, s interface{}) FieldErrors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": "invalid input"}
	}

	fe := FieldErrors{}
	for _, fieldErr := range verrs {
		name := fieldErr.Field()
		if _, seen := fe[name]; seen {
			continue
		}
		fe[name] = messageFor(fieldErr)
	}
	return fe
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s characters", fe.Param())
	case "oneof":
		return "has an unsupported value"
	default:
		return "is invalid"
	}
}
