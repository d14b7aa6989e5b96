package docstore

import "context"

// Record is one document as returned by the backend.
type Record map[string]any

// Name returns the record identifier, empty when absent.
func (r Record) Name() string {
	name, _ := r["name"].(string)
	return name
}

// String returns a string attribute, empty when absent or not a string.
func (r Record) String(key string) string {
	value, _ := r[key].(string)
	return value
}

// Filter restricts a listing. Op uses the backend's operator tokens
// ("=", "like", ">", ...).
type Filter struct {
	Field string
	Op    string
	Value any
}

// Like builds a case-insensitive partial-match filter.
func Like(fieldname, query string) Filter {
	return Filter{Field: fieldname, Op: "like", Value: "%" + query + "%"}
}

// ListQuery shapes a record listing. A zero Limit requests an unbounded page;
// negative limits are rejected by the client.
type ListQuery struct {
	Fields  []string
	Filters []Filter
	OrderBy string
	Limit   int
	// Or requests OR semantics across Filters instead of the default AND.
	Or bool
}

// Transport is the record access contract consumed by the form engine, the
// link resolver, and the item table. All failures carry *TransportError save
// for context cancellation.
type Transport interface {
	List(ctx context.Context, doctype string, query ListQuery) ([]Record, error)
	Get(ctx context.Context, doctype, name string) (Record, error)
	Create(ctx context.Context, doctype string, body Record) (Record, error)
	Update(ctx context.Context, doctype, name string, body Record) (Record, error)
}
