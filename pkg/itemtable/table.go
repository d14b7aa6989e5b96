package itemtable

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-docform/pkg/docstore"
)

// DefaultPriceList is the selling price list consulted when none is
// configured.
const DefaultPriceList = "Standard Selling"

// Row is one item line. Rows are immutable values: table mutations build a
// new row and replace the slice entry.
type Row struct {
	ItemCode    string
	ItemName    string
	Description string
	UOM         string
	Warehouse   string
	Qty         float64
	Rate        float64
	// Amount is always Qty * Rate; it is derived, never set directly.
	Amount float64
	// RateFetched marks a rate taken from the price list. Fetched rates are
	// not manually editable.
	RateFetched bool
}

func (r Row) withAmount() Row {
	r.Amount = r.Qty * r.Rate
	return r
}

// Record converts the row to its wire representation.
func (r Row) Record() docstore.Record {
	return docstore.Record{
		"item_code":   r.ItemCode,
		"item_name":   r.ItemName,
		"description": r.Description,
		"uom":         r.UOM,
		"warehouse":   r.Warehouse,
		"qty":         r.Qty,
		"rate":        r.Rate,
		"amount":      r.Amount,
	}
}

func rowFromRecord(record docstore.Record) Row {
	return Row{
		ItemCode:    record.String("item_code"),
		ItemName:    record.String("item_name"),
		Description: record.String("description"),
		UOM:         record.String("uom"),
		Warehouse:   record.String("warehouse"),
		Qty:         recordFloat(record, "qty"),
		Rate:        recordFloat(record, "rate"),
	}.withAmount()
}

// RowsFromValue decodes a form value back into rows. It accepts the slice
// shapes a form or transport carries: typed records, raw maps, or the
// generic slices JSON decoding produces. Anything else yields no rows.
func RowsFromValue(value any) []Row {
	switch rows := value.(type) {
	case []Row:
		return append([]Row(nil), rows...)
	case []docstore.Record:
		out := make([]Row, 0, len(rows))
		for _, record := range rows {
			out = append(out, rowFromRecord(record))
		}
		return out
	case []map[string]any:
		out := make([]Row, 0, len(rows))
		for _, raw := range rows {
			out = append(out, rowFromRecord(docstore.Record(raw)))
		}
		return out
	case []any:
		out := make([]Row, 0, len(rows))
		for _, entry := range rows {
			if raw, ok := entry.(map[string]any); ok {
				out = append(out, rowFromRecord(docstore.Record(raw)))
			}
		}
		return out
	}
	return nil
}

// Totals aggregates the whole table.
type Totals struct {
	Qty    float64
	Amount float64
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithPriceList selects the selling price list for rate lookups.
func WithPriceList(name string) TableOption {
	return func(t *Table) { t.priceList = name }
}

// WithMandatory requires at least one row at validation time.
func WithMandatory() TableOption {
	return func(t *Table) { t.mandatory = true }
}

// Table owns the ordered item rows of one form. Like the form engine it is
// owned by a single screen and not goroutine safe.
type Table struct {
	transport docstore.Transport
	priceList string
	mandatory bool
	rows      []Row
}

// NewTable builds an empty item table.
func NewTable(transport docstore.Transport, opts ...TableOption) (*Table, error) {
	if transport == nil {
		return nil, errors.New("itemtable: transport is required")
	}
	t := &Table{transport: transport, priceList: DefaultPriceList}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Len returns the current row count.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the row list in display order.
func (t *Table) Rows() []Row {
	return append([]Row(nil), t.rows...)
}

// Records converts the current rows to their wire representation, ready to
// store as the table field's form value.
func (t *Table) Records() []docstore.Record {
	records := make([]docstore.Record, 0, len(t.rows))
	for _, row := range t.rows {
		records = append(records, row.Record())
	}
	return records
}

// LoadRows replaces the table contents with previously saved rows, recomputing
// each amount. Loaded rates come back unlocked so users can adjust them.
func (t *Table) LoadRows(rows []Row) {
	next := make([]Row, 0, len(rows))
	for _, row := range rows {
		row.RateFetched = false
		next = append(next, row.withAmount())
	}
	t.rows = next
}

// Row returns one row by index.
func (t *Table) Row(index int) (Row, error) {
	if index < 0 || index >= len(t.rows) {
		return Row{}, ErrIndexOutOfRange
	}
	return t.rows[index], nil
}

// AddRow appends an empty row with quantity 1 and returns its index.
func (t *Table) AddRow() int {
	row := Row{Qty: 1}.withAmount()
	t.rows = append(append([]Row(nil), t.rows...), row)
	return len(t.rows) - 1
}

// RemoveRow deletes the row at index, preserving the relative order of the
// remaining rows.
func (t *Table) RemoveRow(index int) error {
	if index < 0 || index >= len(t.rows) {
		return ErrIndexOutOfRange
	}
	next := make([]Row, 0, len(t.rows)-1)
	next = append(next, t.rows[:index]...)
	next = append(next, t.rows[index+1:]...)
	t.rows = next
	return nil
}

func (t *Table) replace(index int, row Row) {
	next := append([]Row(nil), t.rows...)
	next[index] = row
	t.rows = next
}

// SetQty updates a row's quantity and recomputes its amount.
func (t *Table) SetQty(index int, qty float64) error {
	row, err := t.Row(index)
	if err != nil {
		return err
	}
	row.Qty = qty
	t.replace(index, row.withAmount())
	return nil
}

// SetRate updates a row's rate and recomputes its amount. Rates filled from
// the price list are locked; clear the item first to override one.
func (t *Table) SetRate(index int, rate float64) error {
	row, err := t.Row(index)
	if err != nil {
		return err
	}
	if row.RateFetched {
		return ErrRateFetched
	}
	row.Rate = rate
	t.replace(index, row.withAmount())
	return nil
}

// SetItem binds an item to a row and runs the two dependent lookups: the
// item master fetch fills name, description, and unit, then the price-list
// lookup fills the rate. A failed master fetch leaves the row untouched and
// returns the failure. A failed or empty price lookup keeps the item details,
// leaves the rate editable, and returns a *PriceLookupError the caller shows
// as a notice.
func (t *Table) SetItem(ctx context.Context, index int, itemCode string) error {
	row, err := t.Row(index)
	if err != nil {
		return err
	}
	if itemCode == "" {
		return errors.New("itemtable: item code is required")
	}

	item, err := t.transport.Get(ctx, "Item", itemCode)
	if err != nil {
		return fmt.Errorf("itemtable: fetching item %s: %w", itemCode, err)
	}

	row.ItemCode = itemCode
	row.ItemName = item.String("item_name")
	row.Description = item.String("description")
	row.UOM = item.String("stock_uom")
	if row.Qty <= 0 {
		row.Qty = 1
	}

	rate, priceErr := t.lookupRate(ctx, itemCode)
	if priceErr != nil {
		row.RateFetched = false
		t.replace(index, row.withAmount())
		return priceErr
	}
	row.Rate = rate
	row.RateFetched = true
	t.replace(index, row.withAmount())
	return nil
}

// ClearItem detaches the item from a row, unlocking the rate.
func (t *Table) ClearItem(index int) error {
	row, err := t.Row(index)
	if err != nil {
		return err
	}
	qty := row.Qty
	t.replace(index, Row{Qty: qty}.withAmount())
	return nil
}

func (t *Table) lookupRate(ctx context.Context, itemCode string) (float64, error) {
	prices, err := t.transport.List(ctx, "Item Price", docstore.ListQuery{
		Fields: []string{"price_list_rate"},
		Filters: []docstore.Filter{
			{Field: "item_code", Op: "=", Value: itemCode},
			{Field: "price_list", Op: "=", Value: t.priceList},
			{Field: "selling", Op: "=", Value: 1},
		},
		Limit: 1,
	})
	if err != nil {
		return 0, &PriceLookupError{ItemCode: itemCode, PriceList: t.priceList, Err: err}
	}
	if len(prices) == 0 {
		return 0, &PriceLookupError{ItemCode: itemCode, PriceList: t.priceList, Err: errors.New("no price list entry")}
	}
	return recordFloat(prices[0], "price_list_rate"), nil
}

// Totals reduces the table to its aggregate quantity and amount. It is
// recomputed from scratch on every call, so it can never drift from the rows.
func (t *Table) Totals() Totals {
	var totals Totals
	for _, row := range t.rows {
		totals.Qty += row.Qty
		totals.Amount += row.Amount
	}
	return totals
}

// Validate checks every row and the table itself. Row failures are collected
// exhaustively; the returned error is the table-level failure, ErrEmptyTable,
// raised only for a mandatory table with no rows.
func (t *Table) Validate() ([]*RowError, error) {
	if t.mandatory && len(t.rows) == 0 {
		return nil, ErrEmptyTable
	}

	var rowErrs []*RowError
	for i, row := range t.rows {
		if row.ItemCode == "" {
			rowErrs = append(rowErrs, &RowError{Index: i, Fieldname: "item_code", Message: "Item Code is required"})
		}
		if row.Qty <= 0 {
			rowErrs = append(rowErrs, &RowError{Index: i, Fieldname: "qty", Message: "Quantity must be greater than zero"})
		}
		if row.Rate < 0 {
			rowErrs = append(rowErrs, &RowError{Index: i, Fieldname: "rate", Message: "Rate cannot be negative"})
		}
	}
	return rowErrs, nil
}

func recordFloat(record docstore.Record, key string) float64 {
	switch v := record[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
