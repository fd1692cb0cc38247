// Package gotemplate runs the HTML renderer's templates on pongo2. Data is
// handed to templates as JSON-shaped values so a struct field is addressed
// by its json tag, the same name API clients see.
package gotemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-contactform/pkg/render/template"
)

var errNilEngine = errors.New("gotemplate: engine is nil")

// Option configures an Engine.
type Option func(*settings)

type settings struct {
	dir     string
	files   fs.FS
	ext     string
	globals map[string]any
}

// WithBaseDir loads templates from a directory on disk. It is consulted
// before any fs.FS given with WithFS.
func WithBaseDir(dir string) Option {
	return func(s *settings) { s.dir = strings.TrimSpace(dir) }
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(s *settings) { s.files = files }
}

// WithExtension sets the suffix appended to template names that lack it.
// Defaults to ".tmpl".
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		switch {
		case ext == "":
		case strings.HasPrefix(ext, "."):
			s.ext = ext
		default:
			s.ext = "." + ext
		}
	}
}

// WithGlobalData exposes data to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			if s.globals == nil {
				s.globals = make(map[string]any, len(data))
			}
			s.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine is a pongo2 template set with a per-name cache of parsed templates.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu     sync.RWMutex // guards set.Globals
	parsed sync.Map     // template path -> *pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. At least one of WithBaseDir or WithFS is required.
func New(options ...Option) (*Engine, error) {
	s := settings{ext: ".tmpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}

	var loaders []pongo2.TemplateLoader
	if s.dir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(s.dir)
		if err != nil {
			return nil, fmt.Errorf("gotemplate: template dir %s: %w", s.dir, err)
		}
		loaders = append(loaders, local)
	}
	if s.files != nil {
		loaders = append(loaders, pongo2.NewFSLoader(s.files))
	}
	if len(loaders) == 0 {
		return nil, errors.New("gotemplate: a template dir or fs.FS is required")
	}

	e := &Engine{set: pongo2.NewSet("contactform", loaders...), ext: s.ext}
	if len(s.globals) > 0 {
		if err := e.GlobalContext(s.globals); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// RenderTemplate executes the template at name, adding the configured
// extension when name has none. The output is also written to each writer.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.exec(tmpl, name, data, out)
}

// RenderString compiles and executes source without caching it.
func (e *Engine) RenderString(source string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errNilEngine
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: compile inline template: %w", err)
	}
	return e.exec(tmpl, "inline template", data, out)
}

// GlobalContext merges data into the values every template can read.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errNilEngine
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	if cached, ok := e.parsed.Load(path); ok {
		return cached.(*pongo2.Template), nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %s: %w", path, err)
	}
	actual, _ := e.parsed.LoadOrStore(path, tmpl)
	return actual.(*pongo2.Template), nil
}

func (e *Engine) exec(tmpl *pongo2.Template, label string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %s data: %w", label, err)
	}

	var b strings.Builder
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &b)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", label, err)
	}

	rendered := b.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("gotemplate: write %s: %w", label, err)
		}
	}
	return rendered, nil
}

// toContext reduces data to JSON values keyed by their json names. Top-level
// map keys are kept as given; blank keys are dropped.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}

	top, ok := data.(map[string]any)
	if c, isCtx := data.(pongo2.Context); isCtx {
		top, ok = c, true
	}
	if !ok {
		var decoded map[string]any
		if err := roundTrip(data, &decoded); err != nil {
			return nil, err
		}
		top = decoded
	}

	ctx := make(pongo2.Context, len(top))
	for key, value := range top {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		switch value.(type) {
		case nil, string, bool, float64, map[string]any, []any:
			ctx[key] = value
			continue
		}
		var decoded any
		if err := roundTrip(value, &decoded); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		ctx[key] = decoded
	}
	return ctx, nil
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
