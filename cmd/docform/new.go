package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/form"
	"github.com/goliatone/go-docform/pkg/renderers/tui"
)

func newNewCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new <doctype>",
		Short: "Create a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}

			engine, err := form.New(form.Config{
				DocType:   args[0],
				Mode:      form.ModeCreate,
				Source:    app.source,
				Transport: app.client,
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
}
