package field

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-docform/pkg/schema"
)

// InputKind identifies the interactive control a field maps to. Renderers
// switch on this instead of the raw schema type.
type InputKind string

const (
	KindText        InputKind = "text"
	KindTextArea    InputKind = "textarea"
	KindNumber      InputKind = "number"
	KindDate        InputKind = "date"
	KindDatetime    InputKind = "datetime"
	KindTime        InputKind = "time"
	KindToggle      InputKind = "toggle"
	KindSelect      InputKind = "select"
	KindLink        InputKind = "link"
	KindDynamicLink InputKind = "dynamic-link"
	KindPassword    InputKind = "password"
	KindReadOnly    InputKind = "readonly"
	KindAttach      InputKind = "attach"
	KindItemTable   InputKind = "item-table"
	// KindNone marks fields that never render an editable control.
	KindNone InputKind = "none"
)

// InputSpec is the result of mapping one descriptor: the control kind, any
// kind-specific configuration, and an optional validator that runs after the
// generic rules.
type InputSpec struct {
	Kind InputKind
	// Choices carries the option list for select controls.
	Choices []string
	// ReferencedDocType names the target document type of a link control.
	ReferencedDocType string
	// TargetField names the sibling field that selects the document type of
	// a dynamic link control.
	TargetField string
	// Integer distinguishes whole-number inputs among number controls.
	Integer bool
	// Validate, when set, checks the raw value after the generic rules pass.
	Validate func(field schema.FieldDescriptor, value any) *Error
}

// Map converts a descriptor into its input specification. It is total: every
// field type, including unknown ones, maps to a defined kind. Unknown types
// fall back to a single-line text control.
func Map(desc schema.FieldDescriptor) InputSpec {
	switch desc.Type {
	case schema.FieldTypeData:
		return InputSpec{Kind: KindText}
	case schema.FieldTypeLongText:
		return InputSpec{Kind: KindTextArea}
	case schema.FieldTypeInt:
		return InputSpec{Kind: KindNumber, Integer: true, Validate: validateInteger}
	case schema.FieldTypeFloat, schema.FieldTypeCurrency, schema.FieldTypePercent:
		return InputSpec{Kind: KindNumber, Validate: validateFloat}
	case schema.FieldTypeDate:
		return InputSpec{Kind: KindDate}
	case schema.FieldTypeDatetime:
		return InputSpec{Kind: KindDatetime}
	case schema.FieldTypeTime:
		return InputSpec{Kind: KindTime}
	case schema.FieldTypeCheck:
		return InputSpec{Kind: KindToggle}
	case schema.FieldTypeSelect:
		return InputSpec{Kind: KindSelect, Choices: desc.SelectChoices()}
	case schema.FieldTypeLink:
		return InputSpec{Kind: KindLink, ReferencedDocType: desc.LinkTarget()}
	case schema.FieldTypeDynamicLink:
		return InputSpec{Kind: KindDynamicLink, TargetField: desc.LinkTarget()}
	case schema.FieldTypePassword:
		return InputSpec{Kind: KindPassword}
	case schema.FieldTypeReadOnly:
		return InputSpec{Kind: KindReadOnly}
	case schema.FieldTypeAttach:
		return InputSpec{Kind: KindAttach}
	case schema.FieldTypeTable:
		return InputSpec{Kind: KindItemTable, ReferencedDocType: desc.LinkTarget()}
	case schema.FieldTypeButton:
		return InputSpec{Kind: KindNone}
	case schema.FieldTypeUnknown:
		return InputSpec{Kind: KindText}
	}
	return InputSpec{Kind: KindText}
}

func validateInteger(desc schema.FieldDescriptor, value any) *Error {
	raw := strings.TrimSpace(valueString(value))
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return newError(desc, CodeInvalidNumber)
	}
	return nil
}

func validateFloat(desc schema.FieldDescriptor, value any) *Error {
	raw := strings.TrimSpace(valueString(value))
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return newError(desc, CodeInvalidNumber)
	}
	return nil
}
