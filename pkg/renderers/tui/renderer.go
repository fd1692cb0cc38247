package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-contactform/pkg/engine"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions. Each
// Render mounts a fresh engine, prompts for every field, and loops on the
// failing fields until a submit is accepted.
type Renderer struct {
	driver        PromptDriver
	outputFormat  OutputFormat
	theme         Theme
	engineOptions []engine.Option
	maxAttempts   int
	inlineChecks  bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs an interactive session and serializes the accepted submission.
// opts.Values seeds the prompt defaults.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	snap, err := r.Run(ctx, form, opts.Values)
	if err != nil {
		return nil, err
	}
	return r.serialize(form, snap)
}

// Run drives one session against a freshly mounted engine and returns the
// accepted snapshot.
func (r *Renderer) Run(ctx context.Context, form model.FormModel, prefill map[string]string) (engine.Snapshot, error) {
	if ctx == nil {
		return engine.Snapshot{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return engine.Snapshot{}, err
	}
	if r.driver == nil {
		return engine.Snapshot{}, errors.New("tui: prompt driver is nil")
	}

	e := engine.New(form, r.engineOptions...)
	for _, name := range e.Fields() {
		if value, ok := prefill[name]; ok {
			e.SetField(name, value)
		}
	}

	if form.Title != "" {
		if err := r.info(ctx, form.Title); err != nil {
			return engine.Snapshot{}, err
		}
	}

	pending := e.Fields()
	for attempt := 1; ; attempt++ {
		shown := make(map[string]bool, len(pending))
		for _, name := range pending {
			field, _ := form.Field(name)
			reported, err := r.promptField(ctx, e, field)
			if err != nil {
				return engine.Snapshot{}, err
			}
			shown[name] = reported
		}

		if e.Submit() {
			snap, _ := e.Snapshot()
			if err := r.echo(ctx, form, snap); err != nil {
				return engine.Snapshot{}, err
			}
			return snap, nil
		}

		failed := e.Errors().Ordered(form)
		pending = pending[:0]
		for _, fe := range failed {
			pending = append(pending, fe.Field)
			if shown[fe.Field] {
				continue
			}
			if err := r.fail(ctx, fe.Message); err != nil {
				return engine.Snapshot{}, err
			}
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return engine.Snapshot{}, ErrTooManyAttempts
		}
	}
}

// promptField asks for one value. Validate-on-change fields report their
// error straight away; the session still moves on and submit decides.
// reported tells whether an error was printed for the field.
func (r *Renderer) promptField(ctx context.Context, e *engine.Engine, field model.Field) (reported bool, err error) {
	q := Question{
		Field:     field.Name,
		Label:     displayLabel(field),
		Default:   e.Value(field.Name),
		Hint:      field.Placeholder,
		Multiline: field.Widget == model.WidgetTextarea,
	}
	if r.inlineChecks && field.ValidateOnChange {
		q.Check = func(answer string) error {
			if message, ok := e.Check(field.Name, answer); !ok {
				return errors.New(message)
			}
			return nil
		}
	}

	answer, err := r.driver.Ask(ctx, q)
	if err != nil {
		return false, err
	}

	e.SetField(field.Name, answer)
	if message, failed := e.Error(field.Name); failed && field.ValidateOnChange {
		return true, r.fail(ctx, message)
	}
	return false, nil
}

func (r *Renderer) echo(ctx context.Context, form model.FormModel, snap engine.Snapshot) error {
	for _, field := range form.Fields {
		if err := r.info(ctx, fmt.Sprintf("%s %s", displayLabel(field), snap.Value(field.Name))); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Say(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Say(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(form model.FormModel, snap engine.Snapshot) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, name := range form.FieldNames() {
			values.Set(name, snap.Value(name))
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s: %s\n", field.Name, snap.Value(field.Name))
		}
		return []byte(b.String()), nil
	default:
		out, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("tui: encode submission: %w", err)
		}
		return out, nil
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
