// Package validation checks application inputs with go-playground/validator.
// Inputs use the `binding` tag so the same rules apply to gin request binding.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/backoffice/internal/domain/shared"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Configure registers the field naming and custom types on v.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		for _, tag := range []string{"form", "uri"} {
			if name != "" {
				break
			}
			name = strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		}
		return name
	})
	// Decimals compare as floats, so gt/gte/lt/lte work on money fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.SetTagName("binding")
		Configure(instance)
	})
	return instance
}

// Struct validates s and converts the first failure into a validation error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	return FromValidator(err)
}

// FromValidator converts validator errors into a *shared.DomainError.
// Other errors are wrapped as invalid input.
func FromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return shared.ErrInvalidInput.WithCause(err)
	}
	e := verrs[0]
	field := fieldPath(e)
	return shared.NewValidationError(field, field+": "+Message(e)).WithCause(err)
}

// fieldPath returns the json path without the root struct name, e.g. lines[0].quantity.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// Message returns a human-readable validation message
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " item(s)"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "lt":
		return "Must be less than " + e.Param()
	case "uuid", "uuid4":
		return "Invalid identifier"
	case "alpha":
		return "Must contain only letters"
	default:
		return "Invalid value"
	}
}

// ID checks that id is a record identifier of the accounting service.
func ID(field, id string) error {
	if id == "" {
		return shared.NewValidationError(field, field+": This field is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return shared.NewValidationError(field, field+": Invalid identifier").WithCause(err)
	}
	return nil
}

// OptionalID is ID for fields that may be left empty.
func OptionalID(field, id string) error {
	if id == "" {
		return nil
	}
	return ID(field, id)
}
