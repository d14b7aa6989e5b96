package schema

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Flag is a boolean delivered as 0/1 on the wire. Some backends emit real
// JSON booleans or quoted digits for the same attribute, so unmarshalling
// accepts all three shapes.
type Flag int

// Bool reports whether the flag is set.
func (f Flag) Bool() bool {
	return f != 0
}

// UnmarshalJSON accepts numbers, booleans, and quoted digits.
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(raw) {
	case "", "0", "false", "null":
		*f = 0
		return nil
	case "true":
		*f = 1
		return nil
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil && n != 0 {
		*f = 1
		return nil
	}
	*f = 0
	return nil
}

// MarshalJSON emits the canonical 0/1 form.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// FieldDescriptor describes one named field of a document type. Ordering of a
// descriptor list is display order; Fieldname is unique within one document
// type's list.
type FieldDescriptor struct {
	Fieldname   string    `json:"fieldname"`
	Label       string    `json:"label,omitempty"`
	Type        FieldType `json:"fieldtype"`
	Options     string    `json:"options,omitempty"`
	Default     string    `json:"default,omitempty"`
	Mandatory   Flag      `json:"reqd"`
	ReadOnly    Flag      `json:"read_only"`
	Hidden      Flag      `json:"hidden"`
	Length      int       `json:"length,omitempty"`
	Precision   string    `json:"precision,omitempty"`
	Description string    `json:"description,omitempty"`
	Idx         int       `json:"idx"`
}

// DisplayLabel returns the label, deriving one from the fieldname when the
// schema omits it (snake_case to spaced title case).
func (d FieldDescriptor) DisplayLabel() string {
	if strings.TrimSpace(d.Label) != "" {
		return d.Label
	}
	parts := strings.Split(d.Fieldname, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

// SelectChoices splits the Options block of a Select field into its choice
// list, dropping blank lines.
func (d FieldDescriptor) SelectChoices() []string {
	if strings.TrimSpace(d.Options) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(d.Options, "\n") {
		if choice := strings.TrimSpace(line); choice != "" {
			out = append(out, choice)
		}
	}
	return out
}

// LinkTarget returns the Options payload that names a field's counterpart:
// the referenced document type of a Link or Table field, or the fieldname of
// the sibling holding the target for a DynamicLink field.
func (d FieldDescriptor) LinkTarget() string {
	return strings.TrimSpace(d.Options)
}

// PrecisionValue parses the precision constraint. The second result is false
// when no usable precision is configured.
func (d FieldDescriptor) PrecisionValue() (int, bool) {
	raw := strings.TrimSpace(d.Precision)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
