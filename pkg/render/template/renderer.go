package template

import (
	"io"
)

// TemplateRenderer is the contract renderers rely on to execute named
// templates or inline template strings against arbitrary data.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
