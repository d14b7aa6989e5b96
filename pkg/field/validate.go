package field

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-docform/pkg/schema"
)

// Code identifies a validation failure class.
type Code string

const (
	CodeRequired        Code = "required"
	CodeInvalidEmail    Code = "invalid_email"
	CodeInvalidPhone    Code = "invalid_phone"
	CodeInvalidURL      Code = "invalid_url"
	CodeTooLong         Code = "too_long"
	CodeTooManyDecimals Code = "too_many_decimals"
	CodeInvalidNumber   Code = "invalid_number"
)

// Error is a per-field validation failure. Validation errors never reach the
// network; they are collected exhaustively and surfaced beside their control.
type Error struct {
	Fieldname string
	Label     string
	Code      Code
	// Limit holds the violated bound for length and precision failures.
	Limit int
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeRequired:
		return fmt.Sprintf("%s is required", e.Label)
	case CodeInvalidEmail:
		return fmt.Sprintf("%s must be a valid email address", e.Label)
	case CodeInvalidPhone:
		return fmt.Sprintf("%s must be a valid phone number", e.Label)
	case CodeInvalidURL:
		return fmt.Sprintf("%s must be a valid URL", e.Label)
	case CodeTooLong:
		return fmt.Sprintf("%s must be at most %d characters", e.Label, e.Limit)
	case CodeTooManyDecimals:
		return fmt.Sprintf("%s allows at most %d decimal places", e.Label, e.Limit)
	case CodeInvalidNumber:
		return fmt.Sprintf("%s must be a valid number", e.Label)
	}
	return fmt.Sprintf("%s is invalid", e.Label)
}

func newError(desc schema.FieldDescriptor, code Code) *Error {
	return &Error{Fieldname: desc.Fieldname, Label: desc.DisplayLabel(), Code: code}
}

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// Validate checks one value against its descriptor. Rules run in a fixed
// precedence and stop at the first violation: required, fieldname-derived
// pattern, length, numeric precision, then the mapper-supplied validator.
// Hidden fields are validated like any other; Button fields never are.
func Validate(desc schema.FieldDescriptor, value any) *Error {
	spec := Map(desc)
	if spec.Kind == KindNone {
		return nil
	}
	if spec.Kind == KindItemTable {
		// Table values are row slices; the string rules below do not apply.
		// Row contents are validated by the table that owns them.
		if desc.Mandatory.Bool() && tableRowCount(value) == 0 {
			return newError(desc, CodeRequired)
		}
		return nil
	}

	raw := strings.TrimSpace(valueString(value))
	if raw == "" {
		if desc.Mandatory.Bool() {
			return newError(desc, CodeRequired)
		}
		return nil
	}

	if err := validatePattern(desc, raw); err != nil {
		return err
	}
	if desc.Length > 0 && len(raw) > desc.Length {
		err := newError(desc, CodeTooLong)
		err.Limit = desc.Length
		return err
	}
	if err := validatePrecision(desc, raw); err != nil {
		return err
	}
	if spec.Validate != nil {
		if err := spec.Validate(desc, value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll checks every field and returns the failures keyed by fieldname.
// Collection is exhaustive: it never stops at the first failing field.
func ValidateAll(fields []schema.FieldDescriptor, values map[string]any) map[string]*Error {
	errs := make(map[string]*Error)
	for _, desc := range fields {
		if err := Validate(desc, values[desc.Fieldname]); err != nil {
			errs[desc.Fieldname] = err
		}
	}
	return errs
}

func validatePattern(desc schema.FieldDescriptor, raw string) *Error {
	name := strings.ToLower(desc.Fieldname)
	switch {
	case strings.Contains(name, "email"):
		if !emailPattern.MatchString(raw) {
			return newError(desc, CodeInvalidEmail)
		}
	case strings.Contains(name, "phone"), strings.Contains(name, "mobile"):
		if !phonePattern.MatchString(raw) {
			return newError(desc, CodeInvalidPhone)
		}
	case strings.Contains(name, "website"):
		parsed, err := url.Parse(raw)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return newError(desc, CodeInvalidURL)
		}
	}
	return nil
}

func validatePrecision(desc schema.FieldDescriptor, raw string) *Error {
	if !desc.Type.Fractional() {
		return nil
	}
	precision, ok := desc.PrecisionValue()
	if !ok {
		return nil
	}
	dot := strings.IndexByte(raw, '.')
	if dot < 0 {
		return nil
	}
	if len(raw)-dot-1 > precision {
		err := newError(desc, CodeTooManyDecimals)
		err.Limit = precision
		return err
	}
	return nil
}

// tableRowCount counts the rows in an item table value without pinning the
// concrete slice type carrying them.
func tableRowCount(value any) int {
	if value == nil {
		return 0
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return 0
	}
	return rv.Len()
}

// valueString renders a form value for rule checks. Nil stays empty; floats
// avoid the exponent notation fmt would pick for large magnitudes.
func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(v)
	}
}
