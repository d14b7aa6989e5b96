package docstore

import (
	"errors"
	"fmt"
)

// errMissingFieldTable reports a DocType record without a field table.
var errMissingFieldTable = errors.New("doctype record has no field table")

// TransportError reports a failed backend call. It is recoverable: callers
// show the message, keep their state, and allow a retry. Message is a short
// reason string; transport internals are not propagated further.
type TransportError struct {
	Status  int
	Message string
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("docstore: backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("docstore: %s", e.Message)
}

func transportErrorf(status int, format string, args ...any) *TransportError {
	return &TransportError{Status: status, Message: fmt.Sprintf(format, args...)}
}
