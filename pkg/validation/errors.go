package validation

import (
	"sort"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Errors maps a field name to its single current message. Absence of a key
// means the field is valid.
type Errors map[string]string

// FieldError pairs a field with its message for ordered presentation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Has reports whether name currently fails validation.
func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for name, message := range e {
		out[name] = message
	}
	return out
}

// Ordered lists the errors following the form's field order. Entries for
// names the form does not declare are appended in lexical order.
func (e Errors) Ordered(form model.FormModel) []FieldError {
	if len(e) == 0 {
		return nil
	}
	out := make([]FieldError, 0, len(e))
	seen := make(map[string]struct{}, len(e))
	for _, field := range form.Fields {
		if message, ok := e[field.Name]; ok {
			out = append(out, FieldError{Field: field.Name, Message: message})
			seen[field.Name] = struct{}{}
		}
	}

	var rest []string
	for name := range e {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, FieldError{Field: name, Message: e[name]})
	}
	return out
}
