package model

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-contactform/pkg/uischema"
)

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Labeler func(string) string
}

// Builder converts layout documents into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := Options{Labeler: DefaultLabeler}
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms a layout into a FormModel. Constraints declared on each
// field become ValidationRules ordered required, minLength, email so the
// required check always takes precedence. An email rule subsumes required:
// a required email field carries only the email rule.
func (b *Builder) Build(layout uischema.Form) (FormModel, error) {
	form := FormModel{
		ID:          layout.ID,
		Endpoint:    layout.Endpoint,
		Method:      strings.ToUpper(layout.Method),
		Title:       layout.Title,
		Description: layout.Description,
		SubmitLabel: layout.SubmitLabel,
	}
	if layout.Source != "" {
		form.Metadata = map[string]string{"source": layout.Source}
	}

	form.Fields = make([]Field, 0, len(layout.Fields))
	for _, cfg := range layout.Fields {
		form.Fields = append(form.Fields, b.field(cfg))
	}

	if err := validateForm(form); err != nil {
		return FormModel{}, err
	}
	return form, nil
}

func (b *Builder) field(cfg uischema.FieldConfig) Field {
	field := Field{
		Name:             cfg.Name,
		Type:             FieldTypeString,
		Widget:           WidgetInput,
		Format:           cfg.Format,
		Required:         cfg.Required,
		Label:            cfg.Label,
		Placeholder:      cfg.Placeholder,
		ValidateOnChange: cfg.ValidateOn == uischema.ValidateOnChange,
	}
	if cfg.Widget == uischema.WidgetTextarea {
		field.Widget = WidgetTextarea
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(cfg.Name)
	}

	if cfg.Required && cfg.Format != uischema.FormatEmail {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}
	if cfg.MinLength > 0 {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.Itoa(cfg.MinLength)},
		})
	}
	if cfg.Format == uischema.FormatEmail {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleEmail})
	}
	return field
}
