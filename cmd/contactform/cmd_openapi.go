package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/uischema"
)

type OpenAPICmd struct {
	env       *Env
	serverURL string
	output    string
	schema    string
	formID    string
}

func NewOpenAPICmd(env *Env) *OpenAPICmd {
	return &OpenAPICmd{env: env}
}

func (cmd *OpenAPICmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "openapi",
		Usage: "Export or import the OpenAPI description of the form",
		Commands: []*cli.Command{
			{
				Name:      "export",
				Usage:     "Write the OpenAPI document for the mounted form",
				UsageText: "contactform openapi export [--server-url url] [--out file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "server-url",
						Usage:       "server URL listed in the document",
						Destination: &cmd.serverURL,
					},
					&cli.StringFlag{
						Name:        "out",
						Aliases:     []string{"o"},
						Usage:       "output file (stdout if empty)",
						Destination: &cmd.output,
					},
				},
				Action: cmd.export,
			},
			{
				Name:      "import",
				Usage:     "Convert a component schema into a layout document",
				UsageText: "contactform openapi import [--schema name] [--id form] <document>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "schema",
						Usage:       "component schema to import",
						Value:       "ContactSubmission",
						Destination: &cmd.schema,
					},
					&cli.StringFlag{
						Name:        "id",
						Usage:       "form id of the generated layout",
						Value:       uischema.DefaultFormID,
						Destination: &cmd.formID,
					},
				},
				Action: cmd.importLayout,
			},
		},
	})
	return app
}

func (cmd *OpenAPICmd) export(ctx context.Context, c *cli.Command) error {
	form, err := contactform.LoadForm(cmd.env.Config.Layout, cmd.env.Config.FormID)
	if err != nil {
		return err
	}
	doc, err := openapi.Export(form, openapi.ExportOptions{
		Title:     form.Title,
		Version:   version,
		ServerURL: cmd.serverURL,
	})
	if err != nil {
		return err
	}
	if err := openapi.Validate(ctx, doc); err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("openapi: encode document: %w", err)
	}

	if cmd.output == "" {
		_, err = fmt.Fprintln(c.Root().Writer, string(data))
		return err
	}
	return os.WriteFile(cmd.output, data, 0o644)
}

func (cmd *OpenAPICmd) importLayout(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("openapi import: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("openapi import: read %s: %w", path, err)
	}

	form, err := openapi.ImportForm(ctx, data, cmd.schema, cmd.formID)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"forms": map[string]uischema.Form{cmd.formID: form}}); err != nil {
		return fmt.Errorf("openapi import: encode layout: %w", err)
	}
	return enc.Close()
}
