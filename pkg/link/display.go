package link

// displayFields maps well-known document types to the attributes humans
// recognize them by. Search matches against these in addition to the record
// name, and the first non-empty one becomes the option label.
var displayFields = map[string][]string{
	"Customer":      {"customer_name"},
	"Supplier":      {"supplier_name"},
	"Item":          {"item_name"},
	"Contact":       {"first_name", "last_name"},
	"Address":       {"address_title"},
	"Company":       {"company_name"},
	"Employee":      {"employee_name"},
	"Project":       {"project_name"},
	"Sales Partner": {"partner_name"},
	"Warehouse":     {"warehouse_name"},
}

// DisplayFields returns the display attributes searched and shown for a
// document type. Every doctype gets "title"; known ones get their specific
// attributes first.
func DisplayFields(doctype string) []string {
	specific := displayFields[doctype]
	out := make([]string, 0, len(specific)+1)
	out = append(out, specific...)
	out = append(out, "title")
	return out
}
