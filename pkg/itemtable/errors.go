package itemtable

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange rejects row operations past the current row list.
	ErrIndexOutOfRange = errors.New("itemtable: row index out of range")
	// ErrRateFetched rejects manual rate edits when a list price applies.
	ErrRateFetched = errors.New("itemtable: rate is fixed by the price list")
	// ErrEmptyTable is the table-level failure for a mandatory table with no
	// rows.
	ErrEmptyTable = errors.New("itemtable: at least one item row is required")
)

// PriceLookupError reports a failed price-list lookup after the item master
// fetch already succeeded. The row keeps its item details, the rate stays
// editable, and the caller shows this as a notice rather than a failure.
type PriceLookupError struct {
	ItemCode  string
	PriceList string
	Err       error
}

func (e *PriceLookupError) Error() string {
	return fmt.Sprintf("itemtable: no price for %s in %s: %v", e.ItemCode, e.PriceList, e.Err)
}

func (e *PriceLookupError) Unwrap() error { return e.Err }

// RowError is one row-level validation failure.
type RowError struct {
	Index     int
	Fieldname string
	Message   string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Index+1, e.Message)
}
