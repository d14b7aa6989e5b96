package link_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/link"
	"github.com/goliatone/go-docform/pkg/schema"
)

type failingSource struct{ err error }

func (f failingSource) Fields(ctx context.Context, doctype string) ([]schema.FieldDescriptor, error) {
	return nil, f.err
}

func (f failingSource) DocTypes(ctx context.Context) ([]string, error) {
	return nil, f.err
}

func TestDynamic_DocTypesFromSource(t *testing.T) {
	source := &schema.StaticSource{ByDocType: map[string][]schema.FieldDescriptor{
		"Customer": nil,
		"Item":     nil,
	}}
	dynamic, err := link.NewDynamicResolver(source, &fakeTransport{})
	if err != nil {
		t.Fatalf("NewDynamicResolver: %v", err)
	}

	doctypes, err := dynamic.DocTypes(context.Background())
	if err != nil {
		t.Fatalf("DocTypes: %v", err)
	}
	if diff := cmp.Diff([]string{"Customer", "Item"}, doctypes); diff != "" {
		t.Fatalf("doctypes mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamic_FallbackWhenListingFails(t *testing.T) {
	fallback := []string{"Customer", "Supplier"}
	dynamic, _ := link.NewDynamicResolver(
		failingSource{err: &docstore.TransportError{Status: 403, Message: "PermissionError"}},
		&fakeTransport{},
		link.WithDocTypeFallback(fallback),
	)

	doctypes, err := dynamic.DocTypes(context.Background())
	if err != nil {
		t.Fatalf("fallback must be transparent, got error %v", err)
	}
	if diff := cmp.Diff(fallback, doctypes); diff != "" {
		t.Fatalf("doctypes mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamic_SearchBeforeSelection(t *testing.T) {
	dynamic, _ := link.NewDynamicResolver(&schema.StaticSource{}, &fakeTransport{})

	var searchErr error
	dynamic.Search(context.Background(), "acme", func(_ []link.Option, err error) {
		searchErr = err
	})
	if !errors.Is(searchErr, link.ErrNoDocType) {
		t.Fatalf("error = %v, want ErrNoDocType", searchErr)
	}

	if _, err := dynamic.SelectedOption(context.Background(), "CUST-001"); !errors.Is(err, link.ErrNoDocType) {
		t.Fatalf("SelectedOption error = %v, want ErrNoDocType", err)
	}
}

func TestDynamic_ChangingDocTypeClearsValue(t *testing.T) {
	transport := &fakeTransport{records: []docstore.Record{{"name": "CUST-001"}}}
	dynamic, _ := link.NewDynamicResolver(
		&schema.StaticSource{},
		transport,
		link.WithResolverOptions(link.WithDebounce(0)),
	)

	cleared, err := dynamic.SetDocType("Customer")
	if err != nil {
		t.Fatalf("SetDocType: %v", err)
	}
	if cleared {
		t.Fatal("first selection has no value to clear")
	}

	if cleared, _ := dynamic.SetDocType("Customer"); cleared {
		t.Fatal("re-selecting the same type must not clear the value")
	}

	cleared, err = dynamic.SetDocType("Supplier")
	if err != nil {
		t.Fatalf("SetDocType: %v", err)
	}
	if !cleared {
		t.Fatal("switching document types must clear the value")
	}
	if dynamic.DocType() != "Supplier" {
		t.Fatalf("doctype = %q", dynamic.DocType())
	}

	// Delegation reaches the per-type resolver.
	var delivered []link.Option
	dynamic.Search(context.Background(), "", func(options []link.Option, err error) {
		delivered = options
	})
	if len(delivered) != 1 {
		t.Fatalf("delivered = %v", delivered)
	}
}
