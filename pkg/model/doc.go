// Package model defines the typed form model consumed by the validation engine
// and the renderers. Builders reside in internal/model but return the types
// defined here. Each field carries its validation rules as data, in
// precedence order (required first, then minLength, then email), so the
// engine and any renderer-side hints read from one source. Fields flagged
// ValidateOnChange are re-evaluated on every edit instead of waiting for
// submit.
package model
