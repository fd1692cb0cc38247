package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/goliatone/go-contactform"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

type PromptCmd struct {
	env         *Env
	format      string
	values      []string
	maxAttempts int
	inline      bool
}

func NewPromptCmd(env *Env) *PromptCmd {
	return &PromptCmd{env: env}
}

func (cmd *PromptCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "prompt",
		Usage:       "Fill in the form interactively in the terminal",
		UsageText:   "contactform prompt [options]",
		Description: "Prompts for every field, re-asks failing fields after submit, and prints the accepted submission.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (json, form, pretty)",
				Value:       string(tui.OutputFormatJSON),
				Destination: &cmd.format,
			},
			&cli.StringSliceFlag{
				Name:        "value",
				Usage:       "prefill a field as name=value (repeatable)",
				Destination: &cmd.values,
			},
			&cli.BoolFlag{
				Name:        "inline-checks",
				Usage:       "refuse invalid answers for validate-on-change fields at the prompt",
				Destination: &cmd.inline,
			},
			&cli.IntFlag{
				Name:        "max-attempts",
				Usage:       "give up after this many failed submits (0 is unlimited)",
				Destination: &cmd.maxAttempts,
			},
		},
		Action: cmd.run,

		// Values are free text; a comma must not split them.
		DisableSliceFlagSeparator: true,
	})
	return app
}

func (cmd *PromptCmd) run(ctx context.Context, c *cli.Command) error {
	form, err := contactform.LoadForm(cmd.env.Config.Layout, cmd.env.Config.FormID)
	if err != nil {
		return err
	}
	prefill, err := parseValues(cmd.values)
	if err != nil {
		return err
	}

	options := []tui.Option{
		tui.WithOutputFormat(tui.OutputFormat(cmd.format)),
		tui.WithMaxAttempts(cmd.maxAttempts),
		tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
	}
	if cmd.inline {
		options = append(options, tui.WithInlineChecks())
	}
	renderer, err := tui.New(options...)
	if err != nil {
		return err
	}

	out, err := renderer.Render(ctx, form, render.RenderOptions{Values: prefill})
	switch {
	case errors.Is(err, tui.ErrAborted):
		cmd.env.Log.Debug().Msg("prompt aborted")
		return nil
	case err != nil:
		return err
	}
	_, err = fmt.Fprintln(c.Root().Writer, string(out))
	return err
}
