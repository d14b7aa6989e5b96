package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/schema"
)

// Mode selects create, edit, or read-only behavior for a form instance.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModeView   Mode = "view"
)

// Config wires an Engine. Source and Transport are required; the remaining
// collaborators default to the package implementations.
type Config struct {
	DocType   string
	Mode      Mode
	Source    schema.Source
	Transport docstore.Transport
	// InitialData seeds field values, typically the record being edited.
	InitialData map[string]any
	// Grouper partitions fields into sections. Defaults to the fieldname
	// heuristic.
	Grouper field.Grouper
	// Defaults resolves initial values for unseeded fields.
	Defaults field.DefaultResolver
	// OnSuccess receives the server's document after a successful submit.
	OnSuccess func(docstore.Record)
	// OnCancel runs when the user abandons the form.
	OnCancel func()
}

// Engine is the stateful orchestrator behind one form screen. It is owned by
// that screen exclusively and must not be used from multiple goroutines.
type Engine struct {
	doctype   string
	mode      Mode
	source    schema.Source
	transport docstore.Transport
	initial   map[string]any
	grouper   field.Grouper
	defaults  field.DefaultResolver
	onSuccess func(docstore.Record)
	onCancel  func()

	loaded     bool
	loadErr    error
	submitting bool
	fields     []schema.FieldDescriptor
	values     map[string]any
	errors     map[string]*field.Error
}

// New validates the configuration and builds an unloaded Engine. Call Load
// before rendering or submitting.
func New(cfg Config) (*Engine, error) {
	if strings.TrimSpace(cfg.DocType) == "" {
		return nil, errors.New("form: document type is required")
	}
	if cfg.Source == nil {
		return nil, errors.New("form: schema source is required")
	}
	if cfg.Transport == nil {
		return nil, errors.New("form: record transport is required")
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeCreate
	}
	switch mode {
	case ModeCreate, ModeEdit, ModeView:
	default:
		return nil, fmt.Errorf("form: unknown mode %q", mode)
	}

	grouper := cfg.Grouper
	if grouper == nil {
		grouper = field.HeuristicGrouper{}
	}

	return &Engine{
		doctype:   cfg.DocType,
		mode:      mode,
		source:    cfg.Source,
		transport: cfg.Transport,
		initial:   cfg.InitialData,
		grouper:   grouper,
		defaults:  cfg.Defaults,
		onSuccess: cfg.OnSuccess,
		onCancel:  cfg.OnCancel,
	}, nil
}

// Load fetches the field schema, filters system fields, sorts by server
// index, and seeds the value map from initial data and field defaults. A
// failed load is terminal for this form: the error is retained, rendering
// shows it, and submission stays blocked until a reload succeeds.
func (e *Engine) Load(ctx context.Context) error {
	e.loaded = false
	e.loadErr = nil

	fields, err := e.source.Fields(ctx, e.doctype)
	if err != nil {
		e.loadErr = err
		return err
	}

	e.fields = schema.PrepareFields(fields)
	e.values = e.defaults.ResolveAll(e.fields, e.initial)
	e.errors = make(map[string]*field.Error)
	e.loaded = true
	return nil
}

// Loaded reports whether a schema load has succeeded.
func (e *Engine) Loaded() bool { return e.loaded }

// LoadError returns the retained schema load failure, nil when none.
func (e *Engine) LoadError() error { return e.loadErr }

// Mode returns the configured form mode.
func (e *Engine) Mode() Mode { return e.mode }

// DocType returns the document type this form edits.
func (e *Engine) DocType() string { return e.doctype }

// Submitting reports whether a submission is in flight.
func (e *Engine) Submitting() bool { return e.submitting }

// Fields returns a copy of the prepared descriptor list.
func (e *Engine) Fields() []schema.FieldDescriptor {
	return append([]schema.FieldDescriptor(nil), e.fields...)
}

// Value returns the current value of one field.
func (e *Engine) Value(fieldname string) any {
	return e.values[fieldname]
}

// Values returns a copy of the current value map.
func (e *Engine) Values() map[string]any {
	out := make(map[string]any, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Errors returns the current validation messages keyed by fieldname.
func (e *Engine) Errors() map[string]string {
	out := make(map[string]string, len(e.errors))
	for name, err := range e.errors {
		out[name] = err.Error()
	}
	return out
}

// UpdateField writes a value and optimistically clears the field's error;
// re-validation waits until the next Validate or Submit. Edits are rejected
// in view mode and before a successful load.
func (e *Engine) UpdateField(fieldname string, value any) error {
	if !e.loaded {
		return ErrNotLoaded
	}
	if e.mode == ModeView {
		return ErrViewMode
	}
	e.values[fieldname] = value
	delete(e.errors, fieldname)
	return nil
}

// Validate runs the full rule sweep over every field, including hidden ones,
// stores the failures, and returns them. An empty map means the form is
// submittable.
func (e *Engine) Validate() map[string]*field.Error {
	if !e.loaded {
		return nil
	}
	e.errors = field.ValidateAll(e.fields, e.values)
	return e.errors
}

// Submit validates exhaustively and, when clean, sends the full value map to
// the backend: create mode posts to the collection, edit mode puts to
// doctype/identifier. Validation failures abort before any network call and
// surface every failing field. Transport failures preserve form state so the
// user can retry. On success the success callback receives the server's
// document and create-mode forms reset for the next entry.
func (e *Engine) Submit(ctx context.Context) (docstore.Record, error) {
	if !e.loaded {
		return nil, ErrNotLoaded
	}
	if e.mode == ModeView {
		return nil, ErrViewMode
	}
	if e.submitting {
		return nil, ErrSubmitInFlight
	}

	if errs := e.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	body := docstore.Record(e.Values())

	e.submitting = true
	defer func() { e.submitting = false }()

	var (
		doc docstore.Record
		err error
	)
	if e.mode == ModeCreate {
		doc, err = e.transport.Create(ctx, e.doctype, body)
	} else {
		identifier := e.identifier()
		if identifier == "" {
			return nil, ErrMissingIdentifier
		}
		doc, err = e.transport.Update(ctx, e.doctype, identifier, body)
	}
	if err != nil {
		return nil, err
	}

	e.errors = make(map[string]*field.Error)
	if e.onSuccess != nil {
		e.onSuccess(doc)
	}
	if e.mode == ModeCreate {
		e.Reset()
	}
	return doc, nil
}

// identifier resolves the record name for updates: initial data first, then
// the current value map.
func (e *Engine) identifier() string {
	if name, ok := e.initial["name"].(string); ok && name != "" {
		return name
	}
	if name, ok := e.values["name"].(string); ok && name != "" {
		return name
	}
	return ""
}

// Cancel invokes the cancel callback. Form state is discarded by the owner.
func (e *Engine) Cancel() {
	if e.onCancel != nil {
		e.onCancel()
	}
}

// Reset clears the form back to field defaults, dropping initial data and
// errors. Used after create-mode submissions.
func (e *Engine) Reset() {
	if !e.loaded {
		return
	}
	e.values = e.defaults.ResolveAll(e.fields, nil)
	e.errors = make(map[string]*field.Error)
}

// Sections groups the prepared fields for display.
func (e *Engine) Sections() []field.Section {
	return e.grouper.Group(e.fields)
}

// View assembles the renderer input for the current state. View-mode forms
// render every control read-only.
func (e *Engine) View() render.FormView {
	return render.BuildView(e.doctype, e.Sections(), e.values, e.Errors(), e.mode == ModeView)
}
