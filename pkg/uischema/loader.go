package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML layout files.
// When fsys is nil or no layout files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for formID, raw := range doc.Forms {
			id := strings.TrimSpace(formID)
			if id == "" {
				return fmt.Errorf("uischema: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}

			form, err := normaliseForm(raw, id, path)
			if err != nil {
				return err
			}
			store.forms[id] = form
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// LoadFile parses a single layout document from disk.
func LoadFile(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("uischema: layout path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("uischema: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	return LoadFS(singleFileFS{dir: os.DirFS(filepath.Dir(path)), name: filepath.Base(path)})
}

// Form returns the layout for the supplied form id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	if !ok {
		return Form{}, false
	}
	form.Fields = append([]FieldConfig(nil), form.Fields...)
	return form, true
}

// IDs lists the form ids held by the store in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]Form `json:"forms" yaml:"forms"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(raw Form, id, source string) (Form, error) {
	form := raw
	form.ID = id
	form.Source = source
	form.Title = strings.TrimSpace(raw.Title)
	form.Description = sanitizeDescription(raw.Description)
	form.Endpoint = strings.TrimSpace(raw.Endpoint)
	if form.Endpoint == "" {
		form.Endpoint = "/"
	}
	form.Method = strings.ToUpper(strings.TrimSpace(raw.Method))
	if form.Method == "" {
		form.Method = "POST"
	}
	form.SubmitLabel = strings.TrimSpace(raw.SubmitLabel)
	if form.SubmitLabel == "" {
		form.SubmitLabel = "Submit"
	}

	if len(raw.Fields) == 0 {
		return Form{}, fmt.Errorf("uischema: form %q (file %s) defines no fields", id, source)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	form.Fields = make([]FieldConfig, 0, len(raw.Fields))
	for idx, field := range raw.Fields {
		cfg, err := normaliseField(field)
		if err != nil {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) field %d: %w", id, source, idx, err)
		}
		if _, exists := seen[cfg.Name]; exists {
			return Form{}, fmt.Errorf("uischema: form %q (file %s) defines duplicate field %q", id, source, cfg.Name)
		}
		seen[cfg.Name] = struct{}{}
		form.Fields = append(form.Fields, cfg)
	}
	return form, nil
}

func normaliseField(raw FieldConfig) (FieldConfig, error) {
	cfg := raw
	cfg.Name = strings.TrimSpace(raw.Name)
	if cfg.Name == "" {
		return FieldConfig{}, fmt.Errorf("name is required")
	}
	cfg.Label = strings.TrimSpace(raw.Label)
	cfg.Placeholder = strings.TrimSpace(raw.Placeholder)

	cfg.Widget = strings.ToLower(strings.TrimSpace(raw.Widget))
	switch cfg.Widget {
	case "":
		cfg.Widget = WidgetInput
	case WidgetInput, WidgetTextarea:
	default:
		return FieldConfig{}, fmt.Errorf("%s: unsupported widget %q", cfg.Name, raw.Widget)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	if cfg.Format != "" && cfg.Format != FormatEmail {
		return FieldConfig{}, fmt.Errorf("%s: unsupported format %q", cfg.Name, raw.Format)
	}

	if raw.MinLength < 0 {
		return FieldConfig{}, fmt.Errorf("%s: minLength must not be negative", cfg.Name)
	}

	cfg.ValidateOn = strings.ToLower(strings.TrimSpace(raw.ValidateOn))
	switch cfg.ValidateOn {
	case "":
		cfg.ValidateOn = ValidateOnSubmit
	case ValidateOnSubmit, ValidateOnChange:
	default:
		return FieldConfig{}, fmt.Errorf("%s: unsupported validateOn %q", cfg.Name, raw.ValidateOn)
	}
	return cfg, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// singleFileFS exposes exactly one file of a directory so LoadFile can reuse
// the LoadFS walk.
type singleFileFS struct {
	dir  fs.FS
	name string
}

func (s singleFileFS) Open(name string) (fs.File, error) {
	if name == "." || name == s.name {
		return s.dir.Open(name)
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func (s singleFileFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	info, err := fs.Stat(s.dir, s.name)
	if err != nil {
		return nil, err
	}
	return []fs.DirEntry{fs.FileInfoToDirEntry(info)}, nil
}

// Normalize applies the same defaults and checks LoadFS uses to a form built
// in code or decoded from another format.
func Normalize(form Form, id, source string) (Form, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Form{}, fmt.Errorf("uischema: form id is required")
	}
	return normaliseForm(form, id, source)
}
