package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/render"
)

// Renderer emits a plain-text rendition of a form view for terminals. The
// interactive counterpart is Session; this renderer only displays state.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer builds the text renderer.
func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Name() string { return "tui" }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the view as an indented section listing.
func (r *Renderer) Render(ctx context.Context, view render.FormView, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, view.Title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(view.Title)))

	for _, message := range view.FormErrors {
		fmt.Fprintf(&buf, "! %s\n", message)
	}

	for _, section := range view.Sections {
		fmt.Fprintf(&buf, "\n%s\n%s\n", section.Title, strings.Repeat("-", len(section.Title)))
		for _, control := range section.Controls {
			label := control.Label
			if control.Mandatory {
				label += " *"
			}
			fmt.Fprintf(&buf, "  %-32s %s\n", label, displayValue(control.Value))
			if control.Error != "" {
				fmt.Fprintf(&buf, "  %-32s ! %s\n", "", control.Error)
			}
		}
	}

	if view.ReadOnly {
		fmt.Fprintln(&buf, "\n(read only)")
	}
	return buf.Bytes(), nil
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case []docstore.Record:
		return fmt.Sprintf("%d items", len(v))
	case []any:
		return fmt.Sprintf("%d items", len(v))
	}
	return fmt.Sprint(value)
}
