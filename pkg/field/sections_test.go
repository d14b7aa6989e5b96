package field_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/schema"
)

func descs(names ...string) []schema.FieldDescriptor {
	out := make([]schema.FieldDescriptor, len(names))
	for i, name := range names {
		out[i] = schema.FieldDescriptor{Fieldname: name, Type: schema.FieldTypeData}
	}
	return out
}

func TestGroup_Classification(t *testing.T) {
	fields := descs(
		"customer_name",
		"email_id",
		"mobile_no",
		"address_line1",
		"city",
		"default_price_list",
		"warehouse",
		"posting_date",
		"gstin",
		"remarks",
	)

	sections := field.HeuristicGrouper{}.Group(fields)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	want := []string{
		field.SectionGeneral,
		field.SectionContact,
		field.SectionAddress,
		field.SectionPricing,
		field.SectionInventory,
		field.SectionDateTime,
		field.SectionTax,
		field.SectionGeneral,
	}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Fatalf("section titles mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_PreservesFieldOrder(t *testing.T) {
	names := []string{"customer_name", "email_id", "customer_group", "phone", "credit_limit"}
	sections := field.HeuristicGrouper{}.Group(descs(names...))

	var flattened []string
	for _, s := range sections {
		for _, f := range s.Fields {
			flattened = append(flattened, f.Fieldname)
		}
	}
	if diff := cmp.Diff(names, flattened); diff != "" {
		t.Fatalf("concatenated order mismatch (-want +got):\n%s", diff)
	}
}

func TestGroup_ContiguousRunsNotMerged(t *testing.T) {
	// Two contact fields separated by a pricing field stay in two separate
	// sections sharing the same title; same-titled sections are never merged
	// across a gap because that would rearrange server-declared order.
	sections := field.HeuristicGrouper{}.Group(descs("email_id", "rate", "phone"))

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if sections[0].Title != field.SectionContact || sections[2].Title != field.SectionContact {
		t.Fatalf("expected contact sections at both ends, got %q / %q", sections[0].Title, sections[2].Title)
	}
	if sections[1].Title != field.SectionPricing {
		t.Fatalf("middle section = %q, want pricing", sections[1].Title)
	}
}

func TestGroup_Empty(t *testing.T) {
	if got := (field.HeuristicGrouper{}).Group(nil); got != nil {
		t.Fatalf("Group(nil) = %v, want nil", got)
	}
}
