package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-docform/pkg/field"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/tui"
)

func TestRenderer_TextLayout(t *testing.T) {
	view := render.FormView{
		DocType:    "Customer",
		Title:      "Customer",
		FormErrors: []string{"schema out of date"},
		Sections: []render.SectionView{
			{
				Title: "General Information",
				Controls: []render.Control{
					{Kind: field.KindText, Fieldname: "customer_name", Label: "Customer Name", Value: "ACME", Mandatory: true, Error: "Customer Name is required"},
					{Kind: field.KindToggle, Fieldname: "disabled", Label: "Disabled", Value: false},
				},
			},
		},
	}

	out, err := tui.NewRenderer().Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"Customer\n========",
		"! schema out of date",
		"General Information",
		"Customer Name *",
		"ACME",
		"! Customer Name is required",
		"no",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q\n%s", want, text)
		}
	}

	if strings.Contains(text, "(read only)") {
		t.Fatal("editable views must not be marked read only")
	}

	view.ReadOnly = true
	out, _ = tui.NewRenderer().Render(context.Background(), view, render.RenderOptions{})
	if !strings.Contains(string(out), "(read only)") {
		t.Fatal("read-only marker missing")
	}
}
