package itemtable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/itemtable"
)

type lookupTransport struct {
	items    map[string]docstore.Record
	prices   map[string][]docstore.Record
	getErr   error
	listErr  error
	listQrys []docstore.ListQuery
}

func (l *lookupTransport) List(ctx context.Context, doctype string, query docstore.ListQuery) ([]docstore.Record, error) {
	l.listQrys = append(l.listQrys, query)
	if l.listErr != nil {
		return nil, l.listErr
	}
	for _, filter := range query.Filters {
		if filter.Field == "item_code" {
			code, _ := filter.Value.(string)
			return l.prices[code], nil
		}
	}
	return nil, nil
}

func (l *lookupTransport) Get(ctx context.Context, doctype, name string) (docstore.Record, error) {
	if l.getErr != nil {
		return nil, l.getErr
	}
	item, ok := l.items[name]
	if !ok {
		return nil, &docstore.TransportError{Status: 404, Message: "not found"}
	}
	return item, nil
}

func (l *lookupTransport) Create(ctx context.Context, doctype string, body docstore.Record) (docstore.Record, error) {
	return nil, errors.New("not implemented")
}

func (l *lookupTransport) Update(ctx context.Context, doctype, name string, body docstore.Record) (docstore.Record, error) {
	return nil, errors.New("not implemented")
}

func steelRodTransport() *lookupTransport {
	return &lookupTransport{
		items: map[string]docstore.Record{
			"ITEM-001": {"name": "ITEM-001", "item_name": "Steel Rod", "description": "12mm rod", "stock_uom": "Nos"},
			"ITEM-002": {"name": "ITEM-002", "item_name": "Copper Wire", "stock_uom": "Meter"},
		},
		prices: map[string][]docstore.Record{
			"ITEM-001": {{"price_list_rate": 10.5}},
		},
	}
}

func newTable(t *testing.T, transport docstore.Transport, opts ...itemtable.TableOption) *itemtable.Table {
	t.Helper()
	table, err := itemtable.NewTable(transport, opts...)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return table
}

func TestAddRemove_PreservesOrder(t *testing.T) {
	table := newTable(t, steelRodTransport())

	for range 3 {
		table.AddRow()
	}
	_ = table.SetRate(0, 1)
	_ = table.SetRate(1, 2)
	_ = table.SetRate(2, 3)

	snapshot := table.Rows()

	if err := table.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}

	var rates []float64
	for _, row := range table.Rows() {
		rates = append(rates, row.Rate)
	}
	if diff := cmp.Diff([]float64{1, 3}, rates); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	// Earlier snapshots are values and must not see the removal.
	if len(snapshot) != 3 {
		t.Fatal("snapshot mutated by removal")
	}

	if err := table.RemoveRow(5); !errors.Is(err, itemtable.ErrIndexOutOfRange) {
		t.Fatalf("RemoveRow(5) = %v", err)
	}
}

func TestSetItem_FillsDetailsAndRate(t *testing.T) {
	transport := steelRodTransport()
	table := newTable(t, transport)
	index := table.AddRow()

	if err := table.SetItem(context.Background(), index, "ITEM-001"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}

	row, _ := table.Row(index)
	want := itemtable.Row{
		ItemCode:    "ITEM-001",
		ItemName:    "Steel Rod",
		Description: "12mm rod",
		UOM:         "Nos",
		Qty:         1,
		Rate:        10.5,
		Amount:      10.5,
		RateFetched: true,
	}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	// Fetched rates are locked against manual edits.
	if err := table.SetRate(index, 99); !errors.Is(err, itemtable.ErrRateFetched) {
		t.Fatalf("SetRate = %v, want ErrRateFetched", err)
	}

	// The price query targets the configured selling list.
	query := transport.listQrys[0]
	wantFilters := []docstore.Filter{
		{Field: "item_code", Op: "=", Value: "ITEM-001"},
		{Field: "price_list", Op: "=", Value: itemtable.DefaultPriceList},
		{Field: "selling", Op: "=", Value: 1},
	}
	if diff := cmp.Diff(wantFilters, query.Filters); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestSetItem_MissingPriceKeepsDetails(t *testing.T) {
	table := newTable(t, steelRodTransport())
	index := table.AddRow()

	err := table.SetItem(context.Background(), index, "ITEM-002")
	var priceErr *itemtable.PriceLookupError
	if !errors.As(err, &priceErr) {
		t.Fatalf("SetItem = %v, want *itemtable.PriceLookupError", err)
	}

	// The first lookup's results survive the second one failing.
	row, _ := table.Row(index)
	if row.ItemName != "Copper Wire" || row.UOM != "Meter" {
		t.Fatalf("item details lost: %+v", row)
	}
	if row.RateFetched {
		t.Fatal("rate must stay editable without a list price")
	}

	// Manual entry still works.
	if err := table.SetRate(index, 4.25); err != nil {
		t.Fatalf("SetRate: %v", err)
	}
	row, _ = table.Row(index)
	if row.Amount != 4.25 {
		t.Fatalf("amount = %v", row.Amount)
	}
}

func TestSetItem_MasterFetchFailureLeavesRowUntouched(t *testing.T) {
	table := newTable(t, steelRodTransport())
	index := table.AddRow()

	err := table.SetItem(context.Background(), index, "ITEM-404")
	var transportErr *docstore.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("SetItem = %v, want *docstore.TransportError", err)
	}
	row, _ := table.Row(index)
	if row.ItemCode != "" {
		t.Fatalf("row mutated on failed fetch: %+v", row)
	}
}

func TestAmountTracksEdits(t *testing.T) {
	table := newTable(t, steelRodTransport())
	index := table.AddRow()

	_ = table.SetQty(index, 3)
	_ = table.SetRate(index, 10.5)

	row, _ := table.Row(index)
	if row.Amount != 31.5 {
		t.Fatalf("amount = %v, want 31.5", row.Amount)
	}

	_ = table.SetQty(index, 5)
	row, _ = table.Row(index)
	if row.Amount != 52.5 {
		t.Fatalf("amount = %v, want 52.5", row.Amount)
	}

	totals := table.Totals()
	if totals.Qty != 5 || totals.Amount != 52.5 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestTotals_ReduceAllRows(t *testing.T) {
	table := newTable(t, steelRodTransport())

	first := table.AddRow()
	_ = table.SetQty(first, 2)
	_ = table.SetRate(first, 100)

	second := table.AddRow()
	_ = table.SetQty(second, 4)
	_ = table.SetRate(second, 25)

	totals := table.Totals()
	if totals.Qty != 6 || totals.Amount != 300 {
		t.Fatalf("totals = %+v", totals)
	}

	_ = table.RemoveRow(first)
	totals = table.Totals()
	if totals.Qty != 4 || totals.Amount != 100 {
		t.Fatalf("totals after removal = %+v", totals)
	}
}

func TestValidate_CollectsRowFailures(t *testing.T) {
	table := newTable(t, steelRodTransport())

	index := table.AddRow()
	_ = table.SetQty(index, 0)
	_ = table.SetRate(index, -1)

	rowErrs, err := table.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	var fields []string
	for _, rowErr := range rowErrs {
		fields = append(fields, rowErr.Fieldname)
	}
	if diff := cmp.Diff([]string{"item_code", "qty", "rate"}, fields); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
	if got := rowErrs[0].Error(); got != "row 1: Item Code is required" {
		t.Fatalf("message = %q", got)
	}
}

func TestValidate_MandatoryEmptyTable(t *testing.T) {
	table := newTable(t, steelRodTransport(), itemtable.WithMandatory())

	_, err := table.Validate()
	if !errors.Is(err, itemtable.ErrEmptyTable) {
		t.Fatalf("Validate = %v, want ErrEmptyTable", err)
	}

	table.AddRow()
	if _, err := table.Validate(); err != nil {
		t.Fatalf("Validate with a row: %v", err)
	}
}

func TestLoadRows_RestoresSavedRowsUnlocked(t *testing.T) {
	table := newTable(t, steelRodTransport())

	table.LoadRows([]itemtable.Row{
		{ItemCode: "ITEM-001", ItemName: "Steel Rod", Qty: 3, Rate: 10.5, RateFetched: true},
		{ItemCode: "ITEM-002", ItemName: "Copper Wire", Qty: 2, Rate: 4},
	})

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Amount != 31.5 || rows[1].Amount != 8 {
		t.Fatalf("amounts not recomputed: %+v", rows)
	}
	// Loaded rates are editable regardless of how they were first filled.
	if err := table.SetRate(0, 11); err != nil {
		t.Fatalf("SetRate after load: %v", err)
	}
}

func TestRecords_RoundTripsThroughFormValue(t *testing.T) {
	table := newTable(t, steelRodTransport())
	index := table.AddRow()
	if err := table.SetItem(context.Background(), index, "ITEM-001"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := table.SetQty(index, 4); err != nil {
		t.Fatalf("SetQty: %v", err)
	}

	records := table.Records()
	want := []docstore.Record{{
		"item_code":   "ITEM-001",
		"item_name":   "Steel Rod",
		"description": "12mm rod",
		"uom":         "Nos",
		"warehouse":   "",
		"qty":         4.0,
		"rate":        10.5,
		"amount":      42.0,
	}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	restored := itemtable.RowsFromValue(records)
	if diff := cmp.Diff(table.Rows(), restored, cmp.Comparer(func(a, b itemtable.Row) bool {
		a.RateFetched, b.RateFetched = false, false
		return a == b
	})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRowsFromValue_DecodedJSONShapes(t *testing.T) {
	value := []any{
		map[string]any{"item_code": "ITEM-001", "qty": 2.0, "rate": 10.5},
		"not a row",
	}
	rows := itemtable.RowsFromValue(value)
	if len(rows) != 1 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].ItemCode != "ITEM-001" || rows[0].Amount != 21 {
		t.Fatalf("row = %+v", rows[0])
	}

	if rows := itemtable.RowsFromValue("nonsense"); rows != nil {
		t.Fatalf("non-slice value produced rows: %v", rows)
	}
}
