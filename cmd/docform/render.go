package main

import (
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/form"
	"github.com/goliatone/go-docform/pkg/openapi"
	"github.com/goliatone/go-docform/pkg/render"
	"github.com/goliatone/go-docform/pkg/renderers/html"
	"github.com/goliatone/go-docform/pkg/renderers/tui"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var (
		rendererName string
		output       string
		submitLabel  string
		action       string
		openapiPath  string
	)

	cmd := &cobra.Command{
		Use:   "render <doctype>",
		Short: "Render an empty form for a document type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}

			source := app.source
			if openapiPath != "" {
				raw, err := os.ReadFile(openapiPath)
				if err != nil {
					return err
				}
				source, err = openapi.NewSource(cmd.Context(), raw)
				if err != nil {
					return err
				}
			}

			registry, err := newRegistry()
			if err != nil {
				return err
			}
			renderer, err := registry.Get(rendererName)
			if err != nil {
				return err
			}

			engine, err := form.New(form.Config{
				DocType:   args[0],
				Mode:      form.ModeCreate,
				Source:    source,
				Transport: app.client,
			})
			if err != nil {
				return err
			}
			if err := engine.Load(cmd.Context()); err != nil {
				return err
			}

			options := render.RenderOptions{SubmitLabel: submitLabel, Action: action}
			if app.cfg.Theme.Name != "" {
				options.Theme = &theme.RendererConfig{
					Theme:   app.cfg.Theme.Name,
					Variant: app.cfg.Theme.Variant,
				}
			}

			out, err := renderer.Render(cmd.Context(), engine.View(), options)
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, out, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "form written to %s\n", output)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&rendererName, "renderer", "html", "renderer to use (html, tui)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&submitLabel, "submit-label", "", "submit button caption")
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	cmd.Flags().StringVar(&openapiPath, "openapi", "", "render from an OpenAPI document instead of the live backend")
	return cmd
}

func newRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(tui.NewRenderer())
	return registry, nil
}
