package form

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-docform/pkg/field"
)

var (
	// ErrNotLoaded rejects operations that need a loaded schema.
	ErrNotLoaded = errors.New("form: schema not loaded")
	// ErrViewMode rejects edits and submission on read-only forms.
	ErrViewMode = errors.New("form: form is in view mode")
	// ErrSubmitInFlight rejects re-entrant submission.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrMissingIdentifier rejects updates without a record name.
	ErrMissingIdentifier = errors.New("form: record identifier is required for update")
)

// ValidationError aggregates every failing field of a submission attempt.
// Collection is exhaustive by design: the caller surfaces all messages at
// once instead of one per attempt.
type ValidationError struct {
	Fields map[string]*field.Error
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("form: validation failed for %d field(s): %v", len(names), names)
}
