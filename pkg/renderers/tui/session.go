package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/form"
	"github.com/goliatone/go-docform/pkg/itemtable"
	"github.com/goliatone/go-docform/pkg/link"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/schema"
)

const defaultPageSize = 10

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDriver overrides the prompt driver. Defaults to the survey driver.
func WithDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithSource enables document-type pickers for dynamic link fields. Without
// it the session asks for the document type as free text.
func WithSource(source schema.Source) SessionOption {
	return func(s *Session) { s.source = source }
}

// WithPageSize caps option lists per prompt page.
func WithPageSize(size int) SessionOption {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithPriceList selects the selling price list consulted for item table rate
// lookups. Empty keeps the item table default.
func WithPriceList(name string) SessionOption {
	return func(s *Session) { s.priceList = name }
}

// Session walks a form engine's controls as terminal prompts: one prompt per
// field, validation feedback after submission, and reference search for link
// fields. View-mode forms are printed instead of prompted.
type Session struct {
	engine    *form.Engine
	transport docstore.Transport
	driver    PromptDriver
	source    schema.Source
	pageSize  int
	priceList string
}

// NewSession builds an interactive session over a form engine. The transport
// feeds link-field searches and may be the same one the engine submits
// through.
func NewSession(engine *form.Engine, transport docstore.Transport, opts ...SessionOption) (*Session, error) {
	if engine == nil {
		return nil, errors.New("tui: form engine is required")
	}
	if transport == nil {
		return nil, errors.New("tui: transport is required")
	}
	s := &Session{
		engine:    engine,
		transport: transport,
		driver:    NewSurveyDriver(),
		pageSize:  defaultPageSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Run loads the form when needed, prompts for every editable control, and
// submits. Validation failures re-prompt just the failing fields; transport
// failures offer a retry. Aborting any prompt cancels the form and returns
// ErrAborted.
func (s *Session) Run(ctx context.Context) (docstore.Record, error) {
	if !s.engine.Loaded() {
		if err := s.engine.Load(ctx); err != nil {
			return nil, err
		}
	}

	if s.engine.Mode() == form.ModeView {
		return nil, s.display(ctx)
	}

	if err := s.promptView(ctx, s.engine.View()); err != nil {
		return nil, s.abort(err)
	}

	for {
		doc, err := s.engine.Submit(ctx)
		if err == nil {
			_ = s.driver.Info(ctx, fmt.Sprintf("Saved %s %s", s.engine.DocType(), doc.Name()))
			return doc, nil
		}

		var validationErr *form.ValidationError
		if errors.As(err, &validationErr) {
			if err := s.repromptFailures(ctx, validationErr); err != nil {
				return nil, s.abort(err)
			}
			continue
		}

		_ = s.driver.Info(ctx, fmt.Sprintf("Submission failed: %v", err))
		retry, confirmErr := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if confirmErr != nil {
			return nil, s.abort(confirmErr)
		}
		if !retry {
			return nil, err
		}
	}
}

func (s *Session) abort(err error) error {
	if errors.Is(err, ErrAborted) {
		s.engine.Cancel()
	}
	return err
}

func (s *Session) display(ctx context.Context) error {
	out, err := NewRenderer().Render(ctx, s.engine.View(), render.RenderOptions{})
	if err != nil {
		return err
	}
	return s.driver.Info(ctx, string(out))
}

func (s *Session) promptView(ctx context.Context, view render.FormView) error {
	for _, section := range view.Sections {
		if err := s.driver.Info(ctx, section.Title); err != nil {
			return err
		}
		for _, control := range section.Controls {
			if err := s.promptControl(ctx, control); err != nil {
				return err
			}
		}
	}
	return nil
}

// repromptFailures announces every validation message, then prompts again
// for the failing fields that have controls. Failures without a control
// (hidden mandatory fields) cannot be satisfied interactively and surface as
// the validation error itself.
func (s *Session) repromptFailures(ctx context.Context, validationErr *form.ValidationError) error {
	names := make([]string, 0, len(validationErr.Fields))
	for name := range validationErr.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.driver.Info(ctx, "! "+validationErr.Fields[name].Error()); err != nil {
			return err
		}
	}

	prompted := false
	for _, section := range s.engine.View().Sections {
		for _, control := range section.Controls {
			if _, failing := validationErr.Fields[control.Fieldname]; !failing {
				continue
			}
			if err := s.promptControl(ctx, control); err != nil {
				return err
			}
			prompted = true
		}
	}
	if !prompted {
		return validationErr
	}
	return nil
}

func (s *Session) promptControl(ctx context.Context, control render.Control) error {
	if control.ReadOnly {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", control.Label, displayValue(control.Value)))
	}

	value, err := s.prompt(ctx, control)
	if err != nil {
		return err
	}
	return s.engine.UpdateField(control.Fieldname, value)
}

func (s *Session) prompt(ctx context.Context, control render.Control) (any, error) {
	current := ""
	if control.Value != nil {
		current = fmt.Sprint(control.Value)
	}

	switch control.Kind {
	case field.KindTextArea:
		return s.driver.TextArea(ctx, TextAreaConfig{Message: control.Label, Default: current, Help: control.Description})
	case field.KindNumber:
		return s.promptNumber(ctx, control, current)
	case field.KindToggle:
		return s.driver.Confirm(ctx, ConfirmConfig{Message: control.Label, Default: current == "true" || current == "1", Help: control.Description})
	case field.KindSelect:
		return s.promptSelect(ctx, control, current)
	case field.KindPassword:
		return s.driver.Password(ctx, InputConfig{Message: control.Label, Help: control.Description})
	case field.KindLink:
		return s.promptLink(ctx, control.Label, control.ReferencedDocType)
	case field.KindDynamicLink:
		return s.promptDynamicLink(ctx, control)
	case field.KindItemTable:
		return s.promptItemTable(ctx, control)
	case field.KindDate:
		return s.driver.Input(ctx, InputConfig{Message: control.Label, Default: current, Help: "YYYY-MM-DD"})
	case field.KindDatetime:
		return s.driver.Input(ctx, InputConfig{Message: control.Label, Default: current, Help: "YYYY-MM-DDTHH:MM:SSZ"})
	case field.KindTime:
		return s.driver.Input(ctx, InputConfig{Message: control.Label, Default: current, Help: "HH:MM:SS"})
	}
	return s.driver.Input(ctx, InputConfig{Message: control.Label, Default: current, Help: control.Description})
}

func (s *Session) promptNumber(ctx context.Context, control render.Control, current string) (any, error) {
	// A zero default reads as "unset" at the prompt.
	if current == "0" {
		current = ""
	}
	raw, err := s.driver.Input(ctx, InputConfig{
		Message:   control.Label,
		Default:   current,
		Help:      control.Description,
		Validator: numberValidator(control.Integer),
	})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return "", nil
	}
	if control.Integer {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return raw, nil
		}
		return parsed, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw, nil
	}
	return parsed, nil
}

func numberValidator(integer bool) func(string) error {
	return func(raw string) error {
		if raw == "" {
			return nil
		}
		if integer {
			if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
				return errors.New("enter a whole number")
			}
			return nil
		}
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return errors.New("enter a number")
		}
		return nil
	}
}

func (s *Session) promptSelect(ctx context.Context, control render.Control, current string) (any, error) {
	if len(control.Choices) == 0 {
		return s.driver.Input(ctx, InputConfig{Message: control.Label, Default: current})
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      control.Label,
		Options:      control.Choices,
		DefaultIndex: indexOf(control.Choices, current),
		Help:         control.Description,
		PageSize:     s.pageSize,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(control.Choices) {
		return "", nil
	}
	return control.Choices[idx], nil
}

// promptLink searches the referenced document type with the user's query and
// offers the matches as a pick list. A failed search degrades to manual
// identifier entry.
func (s *Session) promptLink(ctx context.Context, label, doctype string) (any, error) {
	resolver, err := link.NewResolver(s.transport, doctype, link.WithDebounce(0), link.WithLimit(s.pageSize*2))
	if err != nil {
		return nil, err
	}

	query, err := s.driver.Input(ctx, InputConfig{Message: label, Help: fmt.Sprintf("Search %s, empty lists recent records", doctype)})
	if err != nil {
		return nil, err
	}

	var (
		options   []link.Option
		searchErr error
	)
	resolver.Search(ctx, query, func(found []link.Option, err error) {
		options, searchErr = found, err
	})

	if searchErr != nil {
		if err := s.driver.Info(ctx, fmt.Sprintf("Warning: %v; enter the identifier manually", searchErr)); err != nil {
			return nil, err
		}
		return s.driver.Input(ctx, InputConfig{Message: label + " (identifier)"})
	}
	if len(options) == 0 {
		if err := s.driver.Info(ctx, fmt.Sprintf("No %s records matched %q", doctype, query)); err != nil {
			return nil, err
		}
		return s.driver.Input(ctx, InputConfig{Message: label + " (identifier)"})
	}

	labels := make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: label, Options: labels, PageSize: s.pageSize})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) {
		return "", nil
	}
	return options[idx].Value, nil
}

// promptItemTable runs a table field's repeating rows as a menu loop: add
// rows by picking from the item master, adjust quantities, remove rows, and
// finish once the rows validate. The collected records become the field's
// value.
func (s *Session) promptItemTable(ctx context.Context, control render.Control) (any, error) {
	var tableOpts []itemtable.TableOption
	if s.priceList != "" {
		tableOpts = append(tableOpts, itemtable.WithPriceList(s.priceList))
	}
	if control.Mandatory {
		tableOpts = append(tableOpts, itemtable.WithMandatory())
	}
	table, err := itemtable.NewTable(s.transport, tableOpts...)
	if err != nil {
		return nil, err
	}
	if rows := itemtable.RowsFromValue(control.Value); len(rows) > 0 {
		table.LoadRows(rows)
	}

	for {
		if err := s.showItemRows(ctx, control.Label, table); err != nil {
			return nil, err
		}

		actions := []string{"Add item", "Done"}
		if table.Len() > 0 {
			actions = []string{"Add item", "Set quantity", "Remove item", "Done"}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{Message: control.Label, Options: actions, PageSize: s.pageSize})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case "Add item":
			if err := s.addItemRow(ctx, table); err != nil {
				return nil, err
			}
		case "Set quantity":
			if err := s.setItemQty(ctx, table); err != nil {
				return nil, err
			}
		case "Remove item":
			if err := s.removeItemRow(ctx, table); err != nil {
				return nil, err
			}
		case "Done":
			rowErrs, tableErr := table.Validate()
			if tableErr == nil && len(rowErrs) == 0 {
				return table.Records(), nil
			}
			if tableErr != nil {
				if err := s.driver.Info(ctx, "! "+tableErr.Error()); err != nil {
					return nil, err
				}
			}
			for _, rowErr := range rowErrs {
				if err := s.driver.Info(ctx, "! "+rowErr.Error()); err != nil {
					return nil, err
				}
			}
		}
	}
}

func (s *Session) showItemRows(ctx context.Context, label string, table *itemtable.Table) error {
	if table.Len() == 0 {
		return s.driver.Info(ctx, label+": no items yet")
	}
	for i, row := range table.Rows() {
		line := fmt.Sprintf("%2d. %-20s %g x %g = %g", i+1, row.ItemCode, row.Qty, row.Rate, row.Amount)
		if err := s.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	totals := table.Totals()
	return s.driver.Info(ctx, fmt.Sprintf("    Total qty %g, amount %g", totals.Qty, totals.Amount))
}

// addItemRow appends a row bound to a searched item. A failed price lookup
// keeps the row and asks for the rate; a failed item fetch drops the row with
// a notice.
func (s *Session) addItemRow(ctx context.Context, table *itemtable.Table) error {
	value, err := s.promptLink(ctx, "Item", "Item")
	if err != nil {
		return err
	}
	code, _ := value.(string)
	if code == "" {
		return nil
	}

	index := table.AddRow()
	if err := table.SetItem(ctx, index, code); err != nil {
		var priceErr *itemtable.PriceLookupError
		if !errors.As(err, &priceErr) {
			_ = table.RemoveRow(index)
			return s.driver.Info(ctx, fmt.Sprintf("Warning: %v", err))
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("Warning: %v; enter the rate manually", priceErr)); err != nil {
			return err
		}
		rate, err := s.promptFloat(ctx, "Rate", "")
		if err != nil {
			return err
		}
		if err := table.SetRate(index, rate); err != nil {
			return err
		}
	}

	qty, err := s.promptFloat(ctx, "Quantity", "1")
	if err != nil {
		return err
	}
	if qty > 0 {
		return table.SetQty(index, qty)
	}
	return nil
}

func (s *Session) setItemQty(ctx context.Context, table *itemtable.Table) error {
	index, err := s.pickItemRow(ctx, "Set quantity for", table)
	if err != nil {
		return err
	}
	if index < 0 || index >= table.Len() {
		return nil
	}
	qty, err := s.promptFloat(ctx, "Quantity", "")
	if err != nil {
		return err
	}
	if qty <= 0 {
		return nil
	}
	return table.SetQty(index, qty)
}

func (s *Session) removeItemRow(ctx context.Context, table *itemtable.Table) error {
	index, err := s.pickItemRow(ctx, "Remove", table)
	if err != nil {
		return err
	}
	if index < 0 || index >= table.Len() {
		return nil
	}
	return table.RemoveRow(index)
}

func (s *Session) pickItemRow(ctx context.Context, message string, table *itemtable.Table) (int, error) {
	rows := table.Rows()
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = fmt.Sprintf("%d. %s", i+1, row.ItemCode)
	}
	return s.driver.Select(ctx, SelectConfig{Message: message, Options: labels, PageSize: s.pageSize})
}

func (s *Session) promptFloat(ctx context.Context, label, current string) (float64, error) {
	raw, err := s.driver.Input(ctx, InputConfig{Message: label, Default: current, Validator: numberValidator(false)})
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, nil
	}
	return parsed, nil
}

// promptDynamicLink asks for the referenced document type first, records it
// on the sibling target field, then runs the standard link search.
func (s *Session) promptDynamicLink(ctx context.Context, control render.Control) (any, error) {
	var doctype string
	if s.source != nil {
		doctypes, err := s.source.DocTypes(ctx)
		if err == nil && len(doctypes) > 0 {
			idx, selectErr := s.driver.Select(ctx, SelectConfig{
				Message:  control.Label + " type",
				Options:  doctypes,
				PageSize: s.pageSize,
			})
			if selectErr != nil {
				return nil, selectErr
			}
			if idx >= 0 && idx < len(doctypes) {
				doctype = doctypes[idx]
			}
		}
	}
	if doctype == "" {
		raw, err := s.driver.Input(ctx, InputConfig{Message: control.Label + " type", Help: "Document type to reference"})
		if err != nil {
			return nil, err
		}
		doctype = raw
	}
	if doctype == "" {
		return "", nil
	}

	if control.TargetField != "" {
		if err := s.engine.UpdateField(control.TargetField, doctype); err != nil {
			return nil, err
		}
	}
	return s.promptLink(ctx, control.Label, doctype)
}
