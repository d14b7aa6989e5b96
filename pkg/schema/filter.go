package schema

import "sort"

// systemFields are maintained by the backend and never rendered or submitted.
var systemFields = map[string]struct{}{
	"name":        {},
	"owner":       {},
	"creation":    {},
	"modified":    {},
	"modified_by": {},
	"docstatus":   {},
	"idx":         {},
}

// IsSystemField reports whether a fieldname belongs to the backend's fixed
// bookkeeping columns.
func IsSystemField(fieldname string) bool {
	_, ok := systemFields[fieldname]
	return ok
}

// PrepareFields returns a copy of the descriptor list with system fields
// removed and the remainder sorted by server index. The input is not
// modified. Sorting is stable so descriptors sharing an index keep their
// relative order.
func PrepareFields(fields []FieldDescriptor) []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(fields))
	for _, field := range fields {
		if IsSystemField(field.Fieldname) {
			continue
		}
		out = append(out, field)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Idx < out[j].Idx
	})
	return out
}
