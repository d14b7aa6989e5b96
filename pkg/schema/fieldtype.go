package schema

import "strings"

// FieldType is the closed enumeration of field kinds a document schema can
// declare. Unknown wire values parse to FieldTypeUnknown so the mapper can
// fall back to a plain text control without losing the raw token.
type FieldType string

const (
	FieldTypeData        FieldType = "Data"
	FieldTypeLongText    FieldType = "LongText"
	FieldTypeInt         FieldType = "Int"
	FieldTypeFloat       FieldType = "Float"
	FieldTypeCurrency    FieldType = "Currency"
	FieldTypePercent     FieldType = "Percent"
	FieldTypeDate        FieldType = "Date"
	FieldTypeDatetime    FieldType = "Datetime"
	FieldTypeTime        FieldType = "Time"
	FieldTypeCheck       FieldType = "Check"
	FieldTypeSelect      FieldType = "Select"
	FieldTypeLink        FieldType = "Link"
	FieldTypeDynamicLink FieldType = "DynamicLink"
	FieldTypePassword    FieldType = "Password"
	FieldTypeReadOnly    FieldType = "ReadOnly"
	FieldTypeAttach      FieldType = "Attach"
	FieldTypeTable       FieldType = "Table"
	FieldTypeButton      FieldType = "Button"
	FieldTypeUnknown     FieldType = ""
)

var fieldTypeLookup = map[string]FieldType{
	"data":        FieldTypeData,
	"longtext":    FieldTypeLongText,
	"text":        FieldTypeLongText,
	"smalltext":   FieldTypeLongText,
	"int":         FieldTypeInt,
	"float":       FieldTypeFloat,
	"currency":    FieldTypeCurrency,
	"percent":     FieldTypePercent,
	"date":        FieldTypeDate,
	"datetime":    FieldTypeDatetime,
	"time":        FieldTypeTime,
	"check":       FieldTypeCheck,
	"select":      FieldTypeSelect,
	"link":        FieldTypeLink,
	"dynamiclink": FieldTypeDynamicLink,
	"password":    FieldTypePassword,
	"readonly":    FieldTypeReadOnly,
	"attach":      FieldTypeAttach,
	"table":       FieldTypeTable,
	"button":      FieldTypeButton,
}

// ParseFieldType normalises a wire token into a FieldType. Backends disagree
// on spacing ("Dynamic Link" vs "DynamicLink"), so spaces are stripped before
// lookup. Unrecognised tokens return FieldTypeUnknown and false.
func ParseFieldType(raw string) (FieldType, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if key == "" {
		return FieldTypeUnknown, false
	}
	ft, ok := fieldTypeLookup[key]
	if !ok {
		return FieldTypeUnknown, false
	}
	return ft, true
}

// Numeric reports whether values of this type are numbers on the wire.
func (t FieldType) Numeric() bool {
	switch t {
	case FieldTypeInt, FieldTypeFloat, FieldTypeCurrency, FieldTypePercent:
		return true
	default:
		return false
	}
}

// Fractional reports whether the type carries decimal places that a
// precision constraint can bound.
func (t FieldType) Fractional() bool {
	switch t {
	case FieldTypeFloat, FieldTypeCurrency, FieldTypePercent:
		return true
	default:
		return false
	}
}

// UnmarshalJSON accepts the raw wire token, tolerating spacing variants.
func (t *FieldType) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if ft, ok := ParseFieldType(raw); ok {
		*t = ft
		return nil
	}
	*t = FieldTypeUnknown
	return nil
}
