package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/schema"
)

func newFieldsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <doctype>",
		Short: "Show the form-relevant field schema of a document type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(*configPath)
			if err != nil {
				return err
			}
			fields, err := app.source.Fields(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FIELDNAME\tTYPE\tLABEL\tFLAGS")
			for _, desc := range schema.PrepareFields(fields) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", desc.Fieldname, desc.Type, desc.DisplayLabel(), flagSummary(desc))
			}
			return w.Flush()
		},
	}
}

func flagSummary(desc schema.FieldDescriptor) string {
	out := ""
	if desc.Mandatory.Bool() {
		out += "required "
	}
	if desc.ReadOnly.Bool() {
		out += "readonly "
	}
	if desc.Hidden.Bool() {
		out += "hidden "
	}
	if out == "" {
		return "-"
	}
	return out[:len(out)-1]
}
