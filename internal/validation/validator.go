// Package validation wraps go-playground/validator with field-level error details
// keyed by JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error is returned for malformed or conflicting input.
// Fields maps JSON field names to human readable messages.
type Error struct {
	Message string
	Fields  map[string]string
}

// NewError creates a validation error with optional field details.
func NewError(message string, fields map[string]string) *Error {
	return &Error{Message: message, Fields: fields}
}

// FieldError creates a validation error for a single field.
func FieldError(field, message string) *Error {
	return &Error{
		Message: "validation failed",
		Fields:  map[string]string{field: message},
	}
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// priceRe allows at most 5 digits in total, 2 of them after the decimal point.
var priceRe = regexp.MustCompile(`^-?\d{1,3}(\.\d{1,2})?$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return priceRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// Validate validates a struct using its `validate` tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

// Var validates a single value and reports failures under the given field name.
func Var(field string, value any, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return FieldError(field, friendlyMessage(validationErrs[0]))
		}
		return err
	}
	return nil
}

func formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[fieldPath(e)] = friendlyMessage(e)
	}
	return NewError("validation failed", fields)
}

// fieldPath strips the top-level struct name from the namespace,
// so nested errors read like "tags[0].name".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "may not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url":
		return "must be a valid URL"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "price":
		return "must be a decimal with at most 5 digits and 2 decimal places"
	default:
		return "is invalid"
	}
}
