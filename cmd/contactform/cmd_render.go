package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

type RenderCmd struct {
	env      *Env
	renderer string
	values   []string
	submit   bool
	output   string
}

func NewRenderCmd(env *Env) *RenderCmd {
	return &RenderCmd{env: env}
}

func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "render",
		Usage:       "Render the form once with the given values",
		UsageText:   "contactform render [--value name=value]... [--submit] [--out file]",
		Description: "Sets each value through the engine, optionally submits, and writes the rendered page.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "renderer",
				Usage:       "renderer name (vanilla, json)",
				Value:       "vanilla",
				Destination: &cmd.renderer,
			},
			&cli.StringSliceFlag{
				Name:        "value",
				Usage:       "set a field as name=value (repeatable)",
				Destination: &cmd.values,
			},
			&cli.BoolFlag{
				Name:        "submit",
				Usage:       "submit after setting values",
				Destination: &cmd.submit,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (stdout if empty)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,

		// Values are free text; a comma must not split them.
		DisableSliceFlagSeparator: true,
	})
	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.renderer == "tui" {
		return fmt.Errorf("render: use the prompt command for the terminal renderer")
	}
	form, err := contactform.LoadForm(cmd.env.Config.Layout, cmd.env.Config.FormID)
	if err != nil {
		return err
	}
	values, err := parseValues(cmd.values)
	if err != nil {
		return err
	}

	registry, err := contactform.NewRendererRegistry(contactform.RegistryOptions{
		Vanilla: []vanilla.Option{vanilla.WithDefaultStyles()},
	})
	if err != nil {
		return err
	}
	renderer, err := registry.Get(cmd.renderer)
	if err != nil {
		return err
	}

	e := contactform.NewEngine(form)
	for _, name := range e.Fields() {
		if value, ok := values[name]; ok {
			e.SetField(name, value)
		}
	}
	if cmd.submit {
		accepted := e.Submit()
		cmd.env.Log.Debug().Bool("accepted", accepted).Int("errors", len(e.Errors())).Msg("submit")
	}

	out, err := renderer.Render(ctx, form, render.StateOf(e))
	if err != nil {
		return err
	}

	if cmd.output == "" {
		_, err = fmt.Fprintln(c.Root().Writer, string(out))
		return err
	}
	if err := os.WriteFile(cmd.output, out, 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", cmd.output, err)
	}
	cmd.env.Log.Info().Str("path", cmd.output).Msg("form written")
	return nil
}

// parseValues splits repeated name=value flags. Values may contain '='.
func parseValues(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q: want name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}
