package link

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-docform/pkg/docstore"
)

// DefaultDebounce is the pause after the last keystroke before a search
// fires.
const DefaultDebounce = 500 * time.Millisecond

const labelCacheSize = 128

// Option is one selectable reference: the record identifier plus the label
// shown to the user.
type Option struct {
	Value string
	Label string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDebounce overrides the search debounce. Zero disables debouncing and
// runs searches synchronously, which tests rely on.
func WithDebounce(wait time.Duration) ResolverOption {
	return func(r *Resolver) { r.wait = wait }
}

// WithLimit caps the number of candidate options per search. Zero requests
// an unbounded page.
func WithLimit(limit int) ResolverOption {
	return func(r *Resolver) { r.limit = limit }
}

// Resolver searches one referenced document type for candidate options and
// resolves selected identifiers to display labels. Each reference field owns
// its own Resolver; the instance is not shared across fields.
type Resolver struct {
	transport docstore.Transport
	doctype   string
	wait      time.Duration
	limit     int
	labels    *lru.Cache[string, Option]

	// deliverMu serializes deliveries so the staleness check and the
	// callback are atomic with respect to competing searches.
	deliverMu sync.Mutex

	mu        sync.Mutex
	gen       uint64
	delivered uint64
	timer     *time.Timer
}

// NewResolver builds a resolver for one referenced document type.
func NewResolver(transport docstore.Transport, doctype string, opts ...ResolverOption) (*Resolver, error) {
	if transport == nil {
		return nil, errors.New("link: transport is required")
	}
	if strings.TrimSpace(doctype) == "" {
		return nil, errors.New("link: referenced document type is required")
	}

	labels, err := lru.New[string, Option](labelCacheSize)
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		transport: transport,
		doctype:   doctype,
		wait:      DefaultDebounce,
		labels:    labels,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// DocType returns the referenced document type.
func (r *Resolver) DocType() string { return r.doctype }

// Search schedules a debounced candidate lookup for the given query text and
// delivers the result to the callback. Every call supersedes the previous
// one: pending timers are stopped and in-flight responses for an older call
// are discarded, so deliver only ever observes the newest search.
//
// deliver runs on the timer goroutine when debouncing is active and must not
// call back into Search on the same goroutine. A failed lookup delivers a
// *ReferenceResolutionError and no options; the field degrades instead of
// crashing.
func (r *Resolver) Search(ctx context.Context, query string, deliver func([]Option, error)) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.wait <= 0 {
		r.mu.Unlock()
		r.run(ctx, gen, query, deliver)
		return
	}
	r.timer = time.AfterFunc(r.wait, func() {
		r.run(ctx, gen, query, deliver)
	})
	r.mu.Unlock()
}

// CancelPending stops any scheduled search and invalidates in-flight ones.
// Call it when the owning field is torn down.
func (r *Resolver) CancelPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Resolver) run(ctx context.Context, gen uint64, query string, deliver func([]Option, error)) {
	options, err := r.fetch(ctx, query)

	// Holding deliverMu across the check and the callback closes the window
	// where a superseded search, already past its staleness check, delivers
	// after a newer one. The watermark rejects any generation at or below
	// the last one delivered.
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.mu.Lock()
	stale := gen != r.gen || gen <= r.delivered
	if !stale {
		r.delivered = gen
	}
	r.mu.Unlock()
	if stale {
		return
	}

	if err != nil {
		deliver(nil, &ReferenceResolutionError{DocType: r.doctype, Err: err})
		return
	}
	deliver(options, nil)
}

func (r *Resolver) fetch(ctx context.Context, query string) ([]Option, error) {
	display := DisplayFields(r.doctype)

	listQuery := docstore.ListQuery{
		Fields:  append([]string{"name"}, display...),
		OrderBy: "modified desc",
		Limit:   r.limit,
	}
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		listQuery.Filters = append(listQuery.Filters, docstore.Like("name", trimmed))
		for _, fieldname := range display {
			listQuery.Filters = append(listQuery.Filters, docstore.Like(fieldname, trimmed))
		}
		listQuery.Or = true
	}

	records, err := r.transport.List(ctx, r.doctype, listQuery)
	if err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(records))
	for _, record := range records {
		option := optionFromRecord(record, display)
		if option.Value == "" {
			continue
		}
		r.labels.Add(option.Value, option)
		options = append(options, option)
	}
	return options, nil
}

// SelectedOption resolves a bound identifier to its display option, so the
// field can show a label instead of the raw name. Hits the cache first, then
// falls back to an exact-identifier fetch. Lookup failures come back as
// *ReferenceResolutionError with a name-only option the caller may still
// display.
func (r *Resolver) SelectedOption(ctx context.Context, value string) (Option, error) {
	if value == "" {
		return Option{}, nil
	}
	if option, ok := r.labels.Get(value); ok {
		return option, nil
	}

	record, err := r.transport.Get(ctx, r.doctype, value)
	if err != nil {
		return Option{Value: value, Label: value}, &ReferenceResolutionError{DocType: r.doctype, Err: err}
	}

	option := optionFromRecord(record, DisplayFields(r.doctype))
	if option.Value == "" {
		option.Value = value
	}
	if option.Label == "" {
		option.Label = option.Value
	}
	r.labels.Add(value, option)
	return option, nil
}

func optionFromRecord(record docstore.Record, display []string) Option {
	option := Option{Value: record.Name()}
	for _, fieldname := range display {
		if label := strings.TrimSpace(record.String(fieldname)); label != "" {
			option.Label = label
			break
		}
	}
	if option.Label == "" {
		option.Label = option.Value
	}
	return option
}
