package schema

import "fmt"

// FetchError reports a failed schema load. It is fatal for the form that
// requested it: callers should surface a retry affordance and block
// submission until a reload succeeds.
type FetchError struct {
	DocType string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("schema: fetch fields for %q: %v", e.DocType, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
