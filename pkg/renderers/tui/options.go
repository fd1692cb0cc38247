package tui

import "github.com/goliatone/go-contactform/pkg/engine"

// OutputFormat controls how the accepted submission is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes the renderer applies when printing
// through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithEngineOptions forwards options to the engine each session mounts.
func WithEngineOptions(options ...engine.Option) Option {
	return func(r *Renderer) {
		r.engineOptions = append(r.engineOptions, options...)
	}
}

// WithMaxAttempts caps how many failed submits a session tolerates. Zero or
// a negative value means unlimited.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		r.maxAttempts = n
	}
}

// WithInlineChecks makes validate-on-change fields refuse an invalid answer
// at the prompt instead of reporting it after the fact.
func WithInlineChecks() Option {
	return func(r *Renderer) {
		r.inlineChecks = true
	}
}
