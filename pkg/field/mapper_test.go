package field_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/schema"
)

var allFieldTypes = []schema.FieldType{
	schema.FieldTypeData,
	schema.FieldTypeLongText,
	schema.FieldTypeInt,
	schema.FieldTypeFloat,
	schema.FieldTypeCurrency,
	schema.FieldTypePercent,
	schema.FieldTypeDate,
	schema.FieldTypeDatetime,
	schema.FieldTypeTime,
	schema.FieldTypeCheck,
	schema.FieldTypeSelect,
	schema.FieldTypeLink,
	schema.FieldTypeDynamicLink,
	schema.FieldTypePassword,
	schema.FieldTypeReadOnly,
	schema.FieldTypeAttach,
	schema.FieldTypeTable,
	schema.FieldTypeButton,
	schema.FieldTypeUnknown,
}

func TestMap_TotalOverFieldTypes(t *testing.T) {
	for _, ft := range allFieldTypes {
		spec := field.Map(schema.FieldDescriptor{Fieldname: "f", Type: ft})
		if spec.Kind == "" {
			t.Errorf("Map(%q) produced empty input kind", ft)
		}
		if spec.Kind == field.KindNone && ft != schema.FieldTypeButton {
			t.Errorf("Map(%q) = KindNone, only Button may map to none", ft)
		}
	}
}

func TestMap_SelectSplitsChoices(t *testing.T) {
	spec := field.Map(schema.FieldDescriptor{
		Type:    schema.FieldTypeSelect,
		Options: "Open\nClosed\nOn Hold",
	})
	if spec.Kind != field.KindSelect {
		t.Fatalf("kind = %q, want select", spec.Kind)
	}
	if diff := cmp.Diff([]string{"Open", "Closed", "On Hold"}, spec.Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestMap_LinkCarriesReferencedDocType(t *testing.T) {
	spec := field.Map(schema.FieldDescriptor{
		Fieldname: "customer",
		Type:      schema.FieldTypeLink,
		Options:   "Customer",
	})
	if spec.Kind != field.KindLink || spec.ReferencedDocType != "Customer" {
		t.Fatalf("got kind=%q target=%q, want link/Customer", spec.Kind, spec.ReferencedDocType)
	}
}

func TestMap_DynamicLinkCarriesTargetField(t *testing.T) {
	spec := field.Map(schema.FieldDescriptor{
		Fieldname: "reference_name",
		Type:      schema.FieldTypeDynamicLink,
		Options:   "reference_doctype",
	})
	if spec.Kind != field.KindDynamicLink || spec.TargetField != "reference_doctype" {
		t.Fatalf("got kind=%q target=%q, want dynamic-link/reference_doctype", spec.Kind, spec.TargetField)
	}
}

func TestMap_TableCarriesChildDocType(t *testing.T) {
	spec := field.Map(schema.FieldDescriptor{
		Fieldname: "items",
		Type:      schema.FieldTypeTable,
		Options:   "Quotation Item",
	})
	if spec.Kind != field.KindItemTable || spec.ReferencedDocType != "Quotation Item" {
		t.Fatalf("got kind=%q target=%q, want item-table/Quotation Item", spec.Kind, spec.ReferencedDocType)
	}
}

func TestMap_NumericValidators(t *testing.T) {
	cases := []struct {
		name    string
		ft      schema.FieldType
		value   any
		wantErr bool
	}{
		{"int ok", schema.FieldTypeInt, "42", false},
		{"int bad", schema.FieldTypeInt, "4.2", true},
		{"int empty", schema.FieldTypeInt, "", false},
		{"float ok", schema.FieldTypeFloat, "4.25", false},
		{"float bad", schema.FieldTypeFloat, "abc", true},
		{"currency ok", schema.FieldTypeCurrency, 10.5, false},
		{"percent bad", schema.FieldTypePercent, "ten", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := schema.FieldDescriptor{Fieldname: "f", Type: tc.ft}
			spec := field.Map(desc)
			if spec.Validate == nil {
				t.Fatal("numeric mapping missing validator")
			}
			err := spec.Validate(desc, tc.value)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate(%v) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
			if err != nil && err.Code != field.CodeInvalidNumber {
				t.Fatalf("code = %q, want %q", err.Code, field.CodeInvalidNumber)
			}
		})
	}
}
