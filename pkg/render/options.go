package render

import (
	"github.com/goliatone/go-contactform/pkg/engine"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// RenderOptions describe per-request data that renderers use to reflect the
// engine's state without holding a reference to the engine itself.
type RenderOptions struct {
	// Values pre-populates controls with the current field content.
	Values map[string]string
	// Errors holds at most one message per failing field. Renderers emit one
	// discoverable indicator per entry.
	Errors validation.Errors
	// Submitted, when set, is echoed below the form. Its presence alone
	// decides whether the echo block renders.
	Submitted *engine.Snapshot
	// Hidden carries extra inputs such as a CSRF token.
	Hidden []HiddenField
	// Action overrides the form's endpoint.
	Action string
}

// StateOf captures an engine's current values, errors, and snapshot.
func StateOf(e *engine.Engine) RenderOptions {
	opts := RenderOptions{
		Values: e.Values(),
		Errors: e.Errors(),
	}
	if snap, ok := e.Snapshot(); ok {
		opts.Submitted = &snap
	}
	return opts
}
