package link

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-docform/pkg/docstore"
)

type stubTransport struct{}

func (stubTransport) List(ctx context.Context, doctype string, query docstore.ListQuery) ([]docstore.Record, error) {
	return []docstore.Record{{"name": "CUST-001"}}, nil
}

func (stubTransport) Get(ctx context.Context, doctype, name string) (docstore.Record, error) {
	return docstore.Record{"name": name}, nil
}

func (stubTransport) Create(ctx context.Context, doctype string, body docstore.Record) (docstore.Record, error) {
	return nil, errors.New("not implemented")
}

func (stubTransport) Update(ctx context.Context, doctype, name string, body docstore.Record) (docstore.Record, error) {
	return nil, errors.New("not implemented")
}

func TestRun_GenerationDeliversAtMostOnce(t *testing.T) {
	resolver, err := NewResolver(stubTransport{}, "Customer", WithDebounce(0))
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	delivered := 0
	deliver := func([]Option, error) { delivered++ }

	resolver.mu.Lock()
	resolver.gen = 1
	resolver.mu.Unlock()

	resolver.run(context.Background(), 1, "acme", deliver)
	// The generation still matches, but the watermark rejects anything at
	// or below the last delivered generation.
	resolver.run(context.Background(), 1, "acme", deliver)

	if delivered != 1 {
		t.Fatalf("deliveries = %d, a generation must deliver at most once", delivered)
	}
}

func TestRun_WatermarkRejectsOlderGeneration(t *testing.T) {
	resolver, err := NewResolver(stubTransport{}, "Customer", WithDebounce(0))
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	delivered := 0
	deliver := func([]Option, error) { delivered++ }

	resolver.mu.Lock()
	resolver.gen = 2
	resolver.mu.Unlock()

	resolver.run(context.Background(), 2, "newest", deliver)
	resolver.run(context.Background(), 1, "superseded", deliver)

	if delivered != 1 {
		t.Fatalf("deliveries = %d, an older generation must never deliver after a newer one", delivered)
	}
}
