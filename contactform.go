// Package contactform is the top-level entry point: it loads a form layout,
// mounts engines over it, and assembles the renderers the CLI and server use.
package contactform

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-contactform/pkg/engine"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
	"github.com/goliatone/go-contactform/pkg/uischema"
)

// RenderOptions describes the engine state a renderer reflects.
type RenderOptions = render.RenderOptions

// Snapshot is the record of a successful submit.
type Snapshot = engine.Snapshot

// DefaultForm builds the model for the embedded contact form layout.
func DefaultForm() (model.FormModel, error) {
	return model.ContactForm()
}

// LoadForm builds the model for formID from a layout file or directory. An
// empty path selects the embedded layout.
func LoadForm(path, formID string) (model.FormModel, error) {
	path = strings.TrimSpace(path)
	if path == "" && (formID == "" || formID == uischema.DefaultFormID) {
		return DefaultForm()
	}
	if formID == "" {
		formID = uischema.DefaultFormID
	}

	var (
		store *uischema.Store
		err   error
	)
	if path == "" {
		store, err = uischema.LoadFS(uischema.EmbeddedFS())
	} else {
		store, err = uischema.LoadFile(path)
	}
	if err != nil {
		return model.FormModel{}, fmt.Errorf("contactform: load layout: %w", err)
	}

	layout, ok := store.Form(formID)
	if !ok {
		return model.FormModel{}, fmt.Errorf("contactform: form %q: %w", formID, uischema.ErrFormNotFound)
	}
	form, err := model.NewBuilder().Build(layout)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("contactform: build form %q: %w", formID, err)
	}
	return form, nil
}

// NewEngine mounts a fresh engine over form.
func NewEngine(form model.FormModel, options ...engine.Option) *engine.Engine {
	return engine.New(form, options...)
}

// RegistryOptions tunes the renderers registered by NewRendererRegistry.
type RegistryOptions struct {
	Vanilla []vanilla.Option
	TUI     []tui.Option
}

// NewRendererRegistry registers the vanilla HTML, JSON, and terminal
// renderers.
func NewRendererRegistry(opts RegistryOptions) (*render.Registry, error) {
	html, err := vanilla.New(opts.Vanilla...)
	if err != nil {
		return nil, fmt.Errorf("contactform: vanilla renderer: %w", err)
	}
	terminal, err := tui.New(opts.TUI...)
	if err != nil {
		return nil, fmt.Errorf("contactform: tui renderer: %w", err)
	}
	return render.NewRegistry(html, render.JSONRenderer{}, terminal)
}

// RenderHTML renders form with the vanilla renderer.
func RenderHTML(ctx context.Context, form model.FormModel, opts RenderOptions, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("contactform: vanilla renderer: %w", err)
	}
	return renderer.Render(ctx, form, opts)
}

// EmbeddedTemplates exposes the vanilla renderer templates so callers can
// extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet for serving next to the form.
//
//	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(contactform.AssetsFS())))
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
