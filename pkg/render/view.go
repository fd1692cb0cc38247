package render

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// FieldView is the presentation data for one control.
type FieldView struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Widget      string `json:"widget"`
	Required    bool   `json:"required"`
	Value       string `json:"value"`
	Error       string `json:"error,omitempty"`
}

// EchoView is one submitted value shown after a successful submit.
type EchoView struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	TestID string `json:"testId"`
}

// FormView is the full presentation state shared by renderers.
type FormView struct {
	ID           string                  `json:"id"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description,omitempty"`
	Action       string                  `json:"action"`
	Method       string                  `json:"method"`
	SubmitLabel  string                  `json:"submitLabel"`
	Fields       []FieldView             `json:"fields"`
	Errors       []validation.FieldError `json:"errors,omitempty"`
	Hidden       []HiddenField           `json:"hidden,omitempty"`
	Submitted    bool                    `json:"submitted"`
	SubmissionID string                  `json:"submissionId,omitempty"`
	Echo         []EchoView              `json:"echo,omitempty"`
}

// BuildView merges the form model with per-request state. Echo entries are
// produced for every declared field, blank values included, but only when a
// snapshot is present.
func BuildView(form model.FormModel, opts RenderOptions) FormView {
	view := FormView{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Action:      form.Endpoint,
		Method:      strings.ToUpper(form.Method),
		SubmitLabel: form.SubmitLabel,
		Errors:      opts.Errors.Ordered(form),
		Hidden:      NormalizeHidden(opts.Hidden),
	}
	if opts.Action != "" {
		view.Action = opts.Action
	}
	if view.Method == "" {
		view.Method = "POST"
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = "Submit"
	}

	view.Fields = make([]FieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		view.Fields = append(view.Fields, FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Widget:      string(field.Widget),
			Required:    field.Required,
			Value:       opts.Values[field.Name],
			Error:       opts.Errors[field.Name],
		})
	}

	if opts.Submitted != nil {
		view.Submitted = true
		view.SubmissionID = opts.Submitted.ID()
		view.Echo = make([]EchoView, 0, len(form.Fields))
		for _, field := range form.Fields {
			view.Echo = append(view.Echo, EchoView{
				Name:   field.Name,
				Label:  field.Label,
				Value:  opts.Submitted.Value(field.Name),
				TestID: DisplayTestID(field.Name),
			})
		}
	}
	return view
}

// DisplayTestID names the node that echoes a submitted field, e.g.
// "firstnameDisplay".
func DisplayTestID(field string) string {
	return strings.ToLower(field) + "Display"
}
