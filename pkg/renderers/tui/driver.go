package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Question asks for the value of one form field.
type Question struct {
	Field     string
	Label     string
	Default   string
	Hint      string
	Multiline bool
	// Check rejects an answer before it leaves the prompt. Drivers re-ask
	// until it passes. Nil accepts anything.
	Check func(answer string) error
}

// PromptDriver is the terminal the renderer talks to. Tests script it; the
// default drives survey prompts on stdin/stdout.
type PromptDriver interface {
	Ask(ctx context.Context, q Question) (string, error)
	Say(ctx context.Context, line string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

func newSurveyDriver() PromptDriver {
	return &surveyDriver{out: os.Stdout}
}

func (d *surveyDriver) Ask(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var prompt survey.Prompt = &survey.Input{Message: q.Label, Default: q.Default, Help: q.Hint}
	if q.Multiline {
		prompt = &survey.Multiline{Message: q.Label, Default: q.Default, Help: q.Hint}
	}

	opts := d.opts
	if q.Check != nil {
		opts = append(opts[:len(opts):len(opts)], survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return q.Check(s)
		}))
	}

	var answer string
	if err := survey.AskOne(prompt, &answer, opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("tui: ask %s: %w", q.Field, err)
	}
	return answer, nil
}

func (d *surveyDriver) Say(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, line)
	return err
}
