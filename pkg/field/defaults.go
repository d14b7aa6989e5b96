package field

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-docform/pkg/schema"
)

// DefaultResolver computes the initial value for a descriptor when no value
// was supplied. The clock is injected so resolution stays deterministic under
// test; the zero value uses time.Now.
type DefaultResolver struct {
	Now func() time.Time
}

func (r DefaultResolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Resolve parses the descriptor's declared default according to its type,
// expanding the dynamic placeholders "Today" and "Now". Descriptors without
// a default get the type-appropriate zero value.
func (r DefaultResolver) Resolve(desc schema.FieldDescriptor) any {
	raw := strings.TrimSpace(desc.Default)
	if raw == "" {
		return zeroValue(desc.Type)
	}

	switch desc.Type {
	case schema.FieldTypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return int64(0)
		}
		return n
	case schema.FieldTypeFloat, schema.FieldTypeCurrency, schema.FieldTypePercent:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return float64(0)
		}
		return f
	case schema.FieldTypeCheck:
		return raw == "1" || strings.EqualFold(raw, "true")
	case schema.FieldTypeDate:
		if strings.EqualFold(raw, "Today") {
			return r.now().Format("2006-01-02")
		}
		return raw
	case schema.FieldTypeDatetime:
		if strings.EqualFold(raw, "Now") {
			return r.now().Format(time.RFC3339)
		}
		return raw
	}
	return raw
}

// ResolveAll seeds a value map for a field list, preferring entries already
// present in initial.
func (r DefaultResolver) ResolveAll(fields []schema.FieldDescriptor, initial map[string]any) map[string]any {
	values := make(map[string]any, len(fields))
	for _, desc := range fields {
		if v, ok := initial[desc.Fieldname]; ok {
			values[desc.Fieldname] = v
			continue
		}
		values[desc.Fieldname] = r.Resolve(desc)
	}
	return values
}

func zeroValue(t schema.FieldType) any {
	switch {
	case t == schema.FieldTypeInt:
		return int64(0)
	case t.Fractional():
		return float64(0)
	case t == schema.FieldTypeCheck:
		return false
	}
	return ""
}
