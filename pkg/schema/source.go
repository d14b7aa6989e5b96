package schema

import (
	"context"
	"fmt"
	"sort"
)

// Source supplies ordered field descriptor lists for named document types and
// enumerates the document types the backend knows about. Implementations are
// expected to be safe for concurrent use.
type Source interface {
	// Fields returns the descriptor list for a document type in server
	// display order. Failures wrap FetchError.
	Fields(ctx context.Context, doctype string) ([]FieldDescriptor, error)
	// DocTypes lists the document types available for dynamic references.
	DocTypes(ctx context.Context) ([]string, error)
}

// StaticSource serves descriptors from an in-memory map. Useful for tests and
// offline tooling.
type StaticSource struct {
	ByDocType map[string][]FieldDescriptor
}

var _ Source = (*StaticSource)(nil)

// Fields returns the configured descriptors for a document type.
func (s *StaticSource) Fields(ctx context.Context, doctype string) ([]FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields, ok := s.ByDocType[doctype]
	if !ok {
		return nil, &FetchError{DocType: doctype, Err: fmt.Errorf("unknown document type %q", doctype)}
	}
	return append([]FieldDescriptor(nil), fields...), nil
}

// DocTypes returns the configured document type names, sorted.
func (s *StaticSource) DocTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.ByDocType))
	for name := range s.ByDocType {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
