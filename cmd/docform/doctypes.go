package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDocTypesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctypes",
		Short: "List the document types the backend exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			doctypes, err := app.source.DocTypes(cmd.Context())
			if err != nil {
				return err
			}
			for _, doctype := range doctypes {
				fmt.Fprintln(cmd.OutOrStdout(), doctype)
			}
			return nil
		},
	}
}
