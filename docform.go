// Package docform turns backend field metadata into live forms: it fetches a
// document type's field schema, maps each field to an input control, groups
// the controls into sections, validates values, and submits the assembled
// document back through a REST transport. The root package re-exports the
// common types and offers one-call helpers; the pkg tree holds the pieces for
// callers that want to wire their own.
package docform

import (
	"context"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/form"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/html"
	"github.com/goliatone/go-docform/pkg/renderers/tui"
	"github.com/goliatone/go-docform/pkg/schema"
)

// FieldDescriptor is one field's schema as served by the backend.
type FieldDescriptor = schema.FieldDescriptor

// Source supplies field schemas and document type listings.
type Source = schema.Source

// Record is one backend document.
type Record = docstore.Record

// Transport is the record access contract.
type Transport = docstore.Transport

// Config wires a form engine.
type Config = form.Config

// Engine is the stateful orchestrator behind one form screen.
type Engine = form.Engine

// RenderOptions carries per-request rendering instructions.
type RenderOptions = render.RenderOptions

// FormView is the renderer-agnostic projection of a form's current state.
type FormView = render.FormView

// Modes for form engines.
const (
	ModeCreate = form.ModeCreate
	ModeEdit   = form.ModeEdit
	ModeView   = form.ModeView
)

// NewClient builds the REST transport.
func NewClient(cfg docstore.Config) (*docstore.Client, error) {
	return docstore.NewClient(cfg)
}

// NewEngine builds an unloaded form engine.
func NewEngine(cfg form.Config) (*form.Engine, error) {
	return form.New(cfg)
}

// NewRegistry builds a renderer registry with the built-in renderers
// registered: "html" and "tui".
func NewRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(tui.NewRenderer()); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderForm loads the schema for a document type and renders an empty
// create-mode form with the named renderer. It is the simplest entry point
// for callers that just want output bytes.
func RenderForm(ctx context.Context, source schema.Source, transport docstore.Transport, doctype, rendererName string, options RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}

	engine, err := form.New(form.Config{
		DocType:   doctype,
		Mode:      form.ModeCreate,
		Source:    source,
		Transport: transport,
	})
	if err != nil {
		return nil, err
	}
	if err := engine.Load(ctx); err != nil {
		return nil, err
	}
	return renderer.Render(ctx, engine.View(), options)
}
