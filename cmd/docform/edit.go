package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/form"
	"github.com/goliatone/go-docform/pkg/renderers/tui"
)

func newEditCmd(configPath *string) *cobra.Command {
	var view bool

	cmd := &cobra.Command{
		Use:   "edit <doctype> <name>",
		Short: "Edit an existing document interactively",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}

			doc, err := app.client.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			mode := form.ModeEdit
			if view {
				mode = form.ModeView
			}

			engine, err := form.New(form.Config{
				DocType:     args[0],
				Mode:        mode,
				Source:      app.source,
				Transport:   app.client,
				InitialData: doc,
			})
			if err != nil {
				return err
			}

			session, err := tui.NewSession(engine, app.client,
				tui.WithSource(app.source),
				tui.WithPriceList(app.cfg.PriceList),
			)
			if err != nil {
				return err
			}

			if _, err := session.Run(cmd.Context()); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&view, "view", false, "open read-only")
	return cmd
}
