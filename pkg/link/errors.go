package link

import (
	"errors"
	"fmt"
)

// ErrNoDocType rejects dynamic lookups before a document type is chosen.
var ErrNoDocType = errors.New("link: no document type selected")

// ReferenceResolutionError wraps a failed option search or label lookup. It
// is recoverable: the field degrades to manual entry or stays empty, the
// hosting form keeps working.
type ReferenceResolutionError struct {
	DocType string
	Err     error
}

func (e *ReferenceResolutionError) Error() string {
	return fmt.Sprintf("link: resolving %s references: %v", e.DocType, e.Err)
}

func (e *ReferenceResolutionError) Unwrap() error { return e.Err }
