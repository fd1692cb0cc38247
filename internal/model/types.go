package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString FieldType = "string"
)

// Widget names the control a renderer emits for a field.
type Widget string

const (
	WidgetInput    Widget = "input"
	WidgetTextarea Widget = "textarea"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMinLength = "minLength"
	ValidationRuleEmail     = "email"
)

// ValidationRule represents a single validation constraint applied to a field.
// Use the ValidationRule* constants to reference the supported constraints.
// Length limits encode their threshold in Params["value"]. Rules are listed in
// precedence order: the first failing rule supplies the field's message.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside a contact form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name             string            `json:"name"`
	Type             FieldType         `json:"type"`
	Widget           Widget            `json:"widget"`
	Format           string            `json:"format,omitempty"`
	Required         bool              `json:"required"`
	Label            string            `json:"label,omitempty"`
	Placeholder      string            `json:"placeholder,omitempty"`
	ValidateOnChange bool              `json:"validateOnChange,omitempty"`
	Validations      []ValidationRule  `json:"validations,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation the engine and renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field with the supplied name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (f FormModel) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}
