package docstore

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-docform/pkg/schema"
)

// defaultFallbackDocTypes serves dynamic-link pickers when the backend's
// doctype listing is inaccessible (commonly a permission restriction for
// non-admin accounts). Override via WithFallbackDocTypes; deployments drift.
var defaultFallbackDocTypes = []string{
	"Customer",
	"Supplier",
	"Item",
	"Quotation",
	"Sales Order",
	"Sales Invoice",
	"Payment Entry",
	"Delivery Note",
	"Contact",
	"Address",
}

// SchemaSource serves field descriptor lists from the backend's DocType
// metadata records, satisfying schema.Source.
type SchemaSource struct {
	transport Transport
	fallback  []string
}

var _ schema.Source = (*SchemaSource)(nil)

// SchemaSourceOption customises a SchemaSource.
type SchemaSourceOption func(*SchemaSource)

// WithFallbackDocTypes replaces the built-in doctype list used when the live
// listing is unavailable.
func WithFallbackDocTypes(doctypes []string) SchemaSourceOption {
	return func(s *SchemaSource) {
		if len(doctypes) > 0 {
			s.fallback = append([]string(nil), doctypes...)
		}
	}
}

// NewSchemaSource builds a schema source over an existing transport.
func NewSchemaSource(transport Transport, options ...SchemaSourceOption) *SchemaSource {
	s := &SchemaSource{
		transport: transport,
		fallback:  defaultFallbackDocTypes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Fields fetches the DocType record and decodes its field table in server
// order. Failures wrap schema.FetchError so form loads can distinguish them
// from submission-time transport errors.
func (s *SchemaSource) Fields(ctx context.Context, doctype string) ([]schema.FieldDescriptor, error) {
	record, err := s.transport.Get(ctx, "DocType", doctype)
	if err != nil {
		return nil, &schema.FetchError{DocType: doctype, Err: err}
	}

	rawFields, ok := record["fields"]
	if !ok {
		return nil, &schema.FetchError{DocType: doctype, Err: errMissingFieldTable}
	}

	// The field table arrives as loosely typed JSON; round-trip through the
	// codec to apply the descriptor's wire normalisation.
	encoded, err := json.Marshal(rawFields)
	if err != nil {
		return nil, &schema.FetchError{DocType: doctype, Err: err}
	}
	var fields []schema.FieldDescriptor
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, &schema.FetchError{DocType: doctype, Err: err}
	}
	return fields, nil
}

// DocTypes lists document type names, falling back to the configured static
// list when the backend refuses or fails the listing. The fallback is
// transparent: callers cannot tell which path served them.
func (s *SchemaSource) DocTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := s.transport.List(ctx, "DocType", ListQuery{
		Fields:  []string{"name"},
		OrderBy: "name asc",
	})
	if err != nil {
		return append([]string(nil), s.fallback...), nil
	}

	names := make([]string, 0, len(records))
	for _, record := range records {
		if name := record.Name(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return append([]string(nil), s.fallback...), nil
	}
	return names, nil
}
