package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/schema"
)

func TestParseFieldType_SpacingVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want schema.FieldType
		ok   bool
	}{
		{"Data", schema.FieldTypeData, true},
		{"Dynamic Link", schema.FieldTypeDynamicLink, true},
		{"DynamicLink", schema.FieldTypeDynamicLink, true},
		{"Long Text", schema.FieldTypeLongText, true},
		{"Small Text", schema.FieldTypeLongText, true},
		{"Read Only", schema.FieldTypeReadOnly, true},
		{"check", schema.FieldTypeCheck, true},
		{"Table", schema.FieldTypeTable, true},
		{"Geolocation", schema.FieldTypeUnknown, false},
		{"", schema.FieldTypeUnknown, false},
	}
	for _, tc := range cases {
		got, ok := schema.ParseFieldType(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseFieldType(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFieldDescriptor_Unmarshal(t *testing.T) {
	payload := `{
		"fieldname": "customer_name",
		"label": "Customer Name",
		"fieldtype": "Data",
		"reqd": 1,
		"read_only": "0",
		"hidden": false,
		"length": 140,
		"idx": 3
	}`

	var got schema.FieldDescriptor
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := schema.FieldDescriptor{
		Fieldname: "customer_name",
		Label:     "Customer Name",
		Type:      schema.FieldTypeData,
		Mandatory: 1,
		Length:    140,
		Idx:       3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayLabel_DerivedFromFieldname(t *testing.T) {
	field := schema.FieldDescriptor{Fieldname: "customer_group"}
	if got := field.DisplayLabel(); got != "Customer Group" {
		t.Fatalf("DisplayLabel() = %q, want %q", got, "Customer Group")
	}

	field.Label = "Group"
	if got := field.DisplayLabel(); got != "Group" {
		t.Fatalf("DisplayLabel() = %q, want %q", got, "Group")
	}
}

func TestSelectChoices(t *testing.T) {
	field := schema.FieldDescriptor{
		Type:    schema.FieldTypeSelect,
		Options: "\nDraft\nSubmitted\n\nCancelled\n",
	}
	want := []string{"Draft", "Submitted", "Cancelled"}
	if diff := cmp.Diff(want, field.SelectChoices()); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepareFields_FiltersAndSorts(t *testing.T) {
	fields := []schema.FieldDescriptor{
		{Fieldname: "modified", Type: schema.FieldTypeDatetime, Idx: 0},
		{Fieldname: "territory", Type: schema.FieldTypeLink, Idx: 5},
		{Fieldname: "name", Type: schema.FieldTypeData, Idx: 1},
		{Fieldname: "customer_name", Type: schema.FieldTypeData, Idx: 2},
		{Fieldname: "docstatus", Type: schema.FieldTypeInt, Idx: 3},
	}

	got := schema.PrepareFields(fields)
	wantOrder := []string{"customer_name", "territory"}
	var gotOrder []string
	for _, field := range got {
		gotOrder = append(gotOrder, field.Fieldname)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if len(fields) != 5 {
		t.Fatal("PrepareFields mutated its input")
	}
}

func TestPrecisionValue(t *testing.T) {
	cases := []struct {
		precision string
		want      int
		ok        bool
	}{
		{"2", 2, true},
		{" 3 ", 3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
	}
	for _, tc := range cases {
		got, ok := schema.FieldDescriptor{Precision: tc.precision}.PrecisionValue()
		if got != tc.want || ok != tc.ok {
			t.Errorf("PrecisionValue(%q) = (%d, %v), want (%d, %v)", tc.precision, got, ok, tc.want, tc.ok)
		}
	}
}
