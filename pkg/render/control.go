package render

import (
	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/schema"
)

// Control is the renderer-agnostic description of one interactive input:
// the resolved input kind plus everything a renderer needs to draw it and
// surface its current state.
type Control struct {
	Kind      field.InputKind
	Fieldname string
	Label     string
	Value     any
	// Error holds the field's current validation message, empty when clean.
	Error string
	// Description is helper text shown beneath the control when present.
	Description string
	Mandatory   bool
	ReadOnly    bool
	// Choices carries select options.
	Choices []string
	// ReferencedDocType names the link target doctype.
	ReferencedDocType string
	// TargetField names the sibling selecting a dynamic link's doctype.
	TargetField string
	// Integer marks whole-number inputs among number controls.
	Integer bool
}

// BuildControl maps one descriptor plus its current state to a control. The
// second result is false when the field renders nothing: hidden fields and
// kinds that never produce an editable control (Button). Hidden fields are
// suppressed here but still participate in validation.
func BuildControl(desc schema.FieldDescriptor, value any, errMsg string) (Control, bool) {
	if desc.Hidden.Bool() {
		return Control{}, false
	}
	spec := field.Map(desc)
	if spec.Kind == field.KindNone {
		return Control{}, false
	}
	return Control{
		Kind:              spec.Kind,
		Fieldname:         desc.Fieldname,
		Label:             desc.DisplayLabel(),
		Value:             value,
		Error:             errMsg,
		Description:       desc.Description,
		Mandatory:         desc.Mandatory.Bool(),
		ReadOnly:          desc.ReadOnly.Bool() || spec.Kind == field.KindReadOnly,
		Choices:           spec.Choices,
		ReferencedDocType: spec.ReferencedDocType,
		TargetField:       spec.TargetField,
		Integer:           spec.Integer,
	}, true
}

// SectionView is one titled run of controls.
type SectionView struct {
	Title    string
	Controls []Control
}

// FormView is the complete render input: the document type, its sectioned
// controls, and any form-level messages. ReadOnly views disable every
// control and drop submit affordances.
type FormView struct {
	DocType  string
	Title    string
	Sections []SectionView
	// FormErrors carries messages not attributable to a single field.
	FormErrors []string
	ReadOnly   bool
}

// BuildView assembles a FormView from grouped sections and the current form
// state. Sections whose fields all suppress rendering are dropped.
func BuildView(doctype string, sections []field.Section, values map[string]any, errs map[string]string, readOnly bool) FormView {
	view := FormView{DocType: doctype, Title: doctype, ReadOnly: readOnly}
	for _, section := range sections {
		sv := SectionView{Title: section.Title}
		for _, desc := range section.Fields {
			control, ok := BuildControl(desc, values[desc.Fieldname], errs[desc.Fieldname])
			if !ok {
				continue
			}
			if readOnly {
				control.ReadOnly = true
			}
			sv.Controls = append(sv.Controls, control)
		}
		if len(sv.Controls) > 0 {
			view.Sections = append(view.Sections, sv)
		}
	}
	return view
}
