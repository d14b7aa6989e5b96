package field

import (
	"strings"

	"github.com/goliatone/go-docform/pkg/schema"
)

// Section is a UI-only grouping of fields under a title, derived from field
// names. Sections are recomputed from the field list on demand and never
// stored in the schema.
type Section struct {
	Title  string
	Fields []schema.FieldDescriptor
}

// Grouper partitions an ordered field list into ordered sections. Implemented
// behind an interface so a schema-driven section annotation can replace the
// name heuristic without touching the rendering pipeline.
type Grouper interface {
	Group(fields []schema.FieldDescriptor) []Section
}

// Section titles produced by the heuristic grouper.
const (
	SectionAddress   = "Address Information"
	SectionContact   = "Contact Information"
	SectionPricing   = "Pricing Information"
	SectionInventory = "Inventory Information"
	SectionDateTime  = "Date & Time Information"
	SectionTax       = "Tax Information"
	SectionGeneral   = "General Information"
)

// sectionRule classifies a fieldname by case-insensitive substring match.
// Rules are checked in order; the first hit wins.
type sectionRule struct {
	title string
	terms []string
}

var sectionRules = []sectionRule{
	{SectionAddress, []string{"address", "city", "state", "country", "pincode", "postal"}},
	{SectionContact, []string{"email", "phone", "mobile", "contact", "fax"}},
	{SectionPricing, []string{"rate", "price", "amount", "tax", "currency", "cost", "discount"}},
	{SectionInventory, []string{"stock", "qty", "inventory", "warehouse", "uom", "weight"}},
	{SectionDateTime, []string{"date", "time"}},
	{SectionTax, []string{"gst", "hsn", "vat"}},
}

// HeuristicGrouper classifies fields by fieldname substrings. Grouping
// preserves input order strictly: a section is a contiguous run of
// same-titled fields, so two fields of one category separated by a
// differently classified field land in two separate sections with the same
// title. Server-declared field order is never rearranged.
type HeuristicGrouper struct{}

var _ Grouper = HeuristicGrouper{}

// Group partitions the fields into contiguous titled runs.
func (HeuristicGrouper) Group(fields []schema.FieldDescriptor) []Section {
	var sections []Section
	for _, desc := range fields {
		title := classify(desc.Fieldname)
		if len(sections) == 0 || sections[len(sections)-1].Title != title {
			sections = append(sections, Section{Title: title})
		}
		last := len(sections) - 1
		sections[last].Fields = append(sections[last].Fields, desc)
	}
	return sections
}

func classify(fieldname string) string {
	name := strings.ToLower(fieldname)
	for _, rule := range sectionRules {
		for _, term := range rule.terms {
			if strings.Contains(name, term) {
				return rule.title
			}
		}
	}
	return SectionGeneral
}
