package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-contactform/pkg/model"
)

// JSONRenderer emits the FormView as JSON for API clients that draw the form
// themselves.
type JSONRenderer struct {
	Indent bool
}

func (JSONRenderer) Name() string { return "json" }

func (JSONRenderer) ContentType() string { return "application/json" }

func (r JSONRenderer) Render(_ context.Context, form model.FormModel, options RenderOptions) ([]byte, error) {
	view := BuildView(form, options)
	var (
		out []byte
		err error
	)
	if r.Indent {
		out, err = json.MarshalIndent(view, "", "  ")
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode json view: %w", err)
	}
	return out, nil
}
