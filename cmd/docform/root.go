package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docform/pkg/config"
	"github.com/goliatone/go-docform/pkg/docstore"
	"github.com/goliatone/go-docform/pkg/schema"
)

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "docform",
		Short:         "Render and drive metadata-backed document forms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "docform.yaml", "configuration file")

	root.AddCommand(
		newDocTypesCmd(&configPath),
		newFieldsCmd(&configPath),
		newRenderCmd(&configPath),
		newNewCmd(&configPath),
		newEditCmd(&configPath),
	)
	return root
}

// app bundles the wired collaborators every subcommand needs: file config,
// the REST transport, and the schema source over it.
type app struct {
	cfg    config.Config
	client *docstore.Client
	source schema.Source
}

func newApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	client, err := docstore.NewClient(docstore.Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		Timeout:   cfg.Timeout.Std(),
	})
	if err != nil {
		return nil, fmt.Errorf("wiring transport: %w", err)
	}

	var sourceOpts []docstore.SchemaSourceOption
	if len(cfg.FallbackDocTypes) > 0 {
		sourceOpts = append(sourceOpts, docstore.WithFallbackDocTypes(cfg.FallbackDocTypes))
	}

	return &app{
		cfg:    cfg,
		client: client,
		source: docstore.NewSchemaSource(client, sourceOpts...),
	}, nil
}
