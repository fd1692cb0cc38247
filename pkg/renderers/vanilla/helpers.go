package vanilla

import (
	"strings"

	"github.com/goliatone/go-contactform/pkg/render"
)

type fieldData struct {
	render.FieldView
	ControlID string `json:"controlId"`
	ErrorID   string `json:"errorId,omitempty"`
}

type formData struct {
	render.FormView
	Fields []fieldData `json:"fields"`
}

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + trimmed
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

func decorate(view render.FormView) formData {
	out := formData{FormView: view, Fields: make([]fieldData, 0, len(view.Fields))}
	for _, field := range view.Fields {
		data := fieldData{FieldView: field, ControlID: controlID(field.Name)}
		if field.Error != "" {
			data.ErrorID = errorID(field.Name)
		}
		out.Fields = append(out.Fields, data)
	}
	return out
}
