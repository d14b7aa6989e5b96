package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/itemtable"
	"github.com/goliatone/go-docform/pkg/render"
)

const formTemplate = "templates/form.tpl"

// Option configures the HTML renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	sanitizer *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.templates = os.DirFS(path)
		}
	}
}

// WithSanitizer overrides the policy applied to field descriptions. The
// default allows basic user-generated markup and strips everything active.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// Renderer emits a standalone HTML form for a FormView. Descriptions come
// from the backend and may carry markup, so they are sanitized before the
// template marks them safe.
type Renderer struct {
	form      *pongo2.Template
	sanitizer *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer, parsing the form template eagerly so template
// errors surface at construction.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templates: TemplatesFS(),
		sanitizer: bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := pongo2.NewSet("docform-html", pongo2.NewFSLoader(cfg.templates))
	form, err := set.FromFile(formTemplate)
	if err != nil {
		return nil, fmt.Errorf("html renderer: parse %s: %w", formTemplate, err)
	}

	return &Renderer{form: form, sanitizer: cfg.sanitizer}, nil
}

func (r *Renderer) Name() string { return "html" }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render executes the form template over a template-friendly projection of
// the view.
func (r *Renderer) Render(ctx context.Context, view render.FormView, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Save"
	}

	data := pongo2.Context{
		"form":         r.formContext(view),
		"action":       options.Action,
		"submit_label": submitLabel,
		"variant":      "",
		"css_vars":     []map[string]string{},
	}
	if options.Theme != nil {
		data["variant"] = options.Theme.Variant
		data["css_vars"] = cssVarPairs(options.Theme.CSSVars)
	}

	var buf bytes.Buffer
	if err := r.form.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("html renderer: execute form template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) formContext(view render.FormView) map[string]any {
	sections := make([]map[string]any, 0, len(view.Sections))
	for _, section := range view.Sections {
		controls := make([]map[string]any, 0, len(section.Controls))
		for _, control := range section.Controls {
			controls = append(controls, r.controlContext(control))
		}
		sections = append(sections, map[string]any{
			"title":    section.Title,
			"controls": controls,
		})
	}
	return map[string]any{
		"doctype":   view.DocType,
		"title":     view.Title,
		"read_only": view.ReadOnly,
		"errors":    view.FormErrors,
		"sections":  sections,
	}
}

func (r *Renderer) controlContext(control render.Control) map[string]any {
	value := ""
	if control.Value != nil {
		value = fmt.Sprint(control.Value)
	}
	checked := value == "1" || value == "true"

	data := map[string]any{
		"kind":         string(control.Kind),
		"fieldname":    control.Fieldname,
		"label":        control.Label,
		"value":        value,
		"checked":      checked,
		"error":        control.Error,
		"description":  r.sanitizer.Sanitize(control.Description),
		"mandatory":    control.Mandatory,
		"read_only":    control.ReadOnly,
		"choices":      control.Choices,
		"doctype":      control.ReferencedDocType,
		"target_field": control.TargetField,
		"integer":      control.Integer,
	}
	if control.Kind == field.KindItemTable {
		data["value"] = ""
		data["rows"] = itemRowContexts(control.Value)
	}
	return data
}

// itemRowContexts flattens an item table value into the rows the template
// tabulates. The value may be nil on empty tables.
func itemRowContexts(value any) []map[string]string {
	rows := itemtable.RowsFromValue(value)
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"item_code": row.ItemCode,
			"item_name": row.ItemName,
			"qty":       fmt.Sprint(row.Qty),
			"rate":      fmt.Sprint(row.Rate),
			"amount":    fmt.Sprint(row.Amount),
		})
	}
	return out
}

// cssVarPairs flattens the theme's CSS variables into a sorted list so the
// emitted style block is deterministic.
func cssVarPairs(vars map[string]string) []map[string]string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]map[string]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, map[string]string{"name": name, "value": vars[name]})
	}
	return pairs
}
