package uischema

import "errors"

// ErrFormNotFound is returned when a requested form id is absent from a store.
var ErrFormNotFound = errors.New("uischema: form not found")

// Widget values accepted on FieldConfig.Widget.
const (
	WidgetInput    = "input"
	WidgetTextarea = "textarea"
)

// ValidateOn values accepted on FieldConfig.ValidateOn.
const (
	ValidateOnSubmit = "submit"
	ValidateOnChange = "change"
)

// FormatEmail marks a field whose value must be a local@domain.tld address.
const FormatEmail = "email"

// Store keeps the parsed forms from layout documents. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes one contact form layout after normalisation.
type Form struct {
	ID          string        `json:"id" yaml:"-"`
	Source      string        `json:"-" yaml:"-"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint    string        `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method      string        `json:"method,omitempty" yaml:"method,omitempty"`
	SubmitLabel string        `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	Fields      []FieldConfig `json:"fields" yaml:"fields"`
}

// FieldConfig configures a single input, its presentation, and its
// constraints. Constraints are declarative; the validation package interprets
// them.
type FieldConfig struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string `json:"widget,omitempty" yaml:"widget,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   int    `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	ValidateOn  string `json:"validateOn,omitempty" yaml:"validateOn,omitempty"`
}

// Field returns the configuration for the named field.
func (f Form) Field(name string) (FieldConfig, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldConfig{}, false
}
