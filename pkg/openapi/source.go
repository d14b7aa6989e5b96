package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docform/pkg/schema"
)

// linkExtension names the vendor extension that marks a string property as a
// reference to another document type.
const linkExtension = "x-link-doctype"

// longTextThreshold is the max length beyond which a string property renders
// as a multi-line control.
const longTextThreshold = 300

type sourceOptions struct {
	externalRefs bool
}

// SourceOption configures document loading.
type SourceOption func(*sourceOptions)

// WithExternalRefs allows the loader to follow references outside the
// document. Off by default to keep loading offline.
func WithExternalRefs() SourceOption {
	return func(o *sourceOptions) { o.externalRefs = true }
}

// Source serves field descriptors parsed from an OpenAPI document. It is
// immutable after construction and safe for concurrent use.
type Source struct {
	doctypes map[string][]schema.FieldDescriptor
	names    []string
}

var _ schema.Source = (*Source)(nil)

// NewSource parses a raw OpenAPI document (JSON or YAML) and indexes its
// component schemas as document types.
func NewSource(ctx context.Context, raw []byte, opts ...SourceOption) (*Source, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	var options sourceOptions
	for _, opt := range opts {
		opt(&options)
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.externalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}

	source := &Source{doctypes: make(map[string][]schema.FieldDescriptor, len(spec.Components.Schemas))}
	for name, ref := range spec.Components.Schemas {
		if ref == nil || ref.Value == nil {
			continue
		}
		source.doctypes[name] = descriptorsFor(ref.Value)
		source.names = append(source.names, name)
	}
	sort.Strings(source.names)
	return source, nil
}

// Fields returns the descriptors derived from the named component schema.
func (s *Source) Fields(ctx context.Context, doctype string) ([]schema.FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields, ok := s.doctypes[doctype]
	if !ok {
		return nil, &schema.FetchError{DocType: doctype, Err: fmt.Errorf("no component schema named %q", doctype)}
	}
	return append([]schema.FieldDescriptor(nil), fields...), nil
}

// DocTypes lists the component schema names, sorted.
func (s *Source) DocTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), s.names...), nil
}

func descriptorsFor(obj *openapi3.Schema) []schema.FieldDescriptor {
	required := make(map[string]bool, len(obj.Required))
	for _, name := range obj.Required {
		required[name] = true
	}

	names := make([]string, 0, len(obj.Properties))
	for name := range obj.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.FieldDescriptor, 0, len(names))
	for i, name := range names {
		ref := obj.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		desc := descriptorFor(name, ref.Value)
		desc.Idx = i + 1
		if required[name] {
			desc.Mandatory = 1
		}
		fields = append(fields, desc)
	}
	return fields
}

func descriptorFor(name string, prop *openapi3.Schema) schema.FieldDescriptor {
	desc := schema.FieldDescriptor{
		Fieldname:   name,
		Description: prop.Description,
	}
	if prop.ReadOnly {
		desc.ReadOnly = 1
	}
	if prop.Default != nil {
		desc.Default = fmt.Sprint(prop.Default)
	}

	desc.Type, desc.Options = typeFor(prop)
	if desc.Type == schema.FieldTypeData && prop.MaxLength != nil {
		desc.Length = int(*prop.MaxLength)
	}
	return desc
}

// typeFor maps an OpenAPI property onto the closest field type. Enums become
// selects, the link extension wins over everything else for strings.
func typeFor(prop *openapi3.Schema) (schema.FieldType, string) {
	var primary string
	if prop.Type != nil {
		if slice := prop.Type.Slice(); len(slice) > 0 {
			primary = slice[0]
		}
	}

	switch primary {
	case "integer":
		return schema.FieldTypeInt, ""
	case "number":
		return schema.FieldTypeFloat, ""
	case "boolean":
		return schema.FieldTypeCheck, ""
	case "string":
		if doctype, ok := prop.Extensions[linkExtension].(string); ok && doctype != "" {
			return schema.FieldTypeLink, doctype
		}
		if len(prop.Enum) > 0 {
			return schema.FieldTypeSelect, enumOptions(prop.Enum)
		}
		switch prop.Format {
		case "date":
			return schema.FieldTypeDate, ""
		case "date-time":
			return schema.FieldTypeDatetime, ""
		case "password":
			return schema.FieldTypePassword, ""
		}
		if prop.MaxLength != nil && *prop.MaxLength > longTextThreshold {
			return schema.FieldTypeLongText, ""
		}
		return schema.FieldTypeData, ""
	}
	return schema.FieldTypeData, ""
}

func enumOptions(values []any) string {
	options := make([]string, 0, len(values))
	for _, value := range values {
		options = append(options, fmt.Sprint(value))
	}
	return strings.Join(options, "\n")
}
