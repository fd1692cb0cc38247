package gotemplate_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-contactform/pkg/testsupport"
)

type greeting struct {
	FirstName string `json:"firstName"`
	Hidden    string `json:"-"`
}

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"templates/hello.tmpl": &fstest.MapFile{Data: []byte(`{{ site }}: hello {{ person.firstName }}{{ person.Hidden }}`)},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateUsesJSONKeys(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"site": "contact"}))

	rendered, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("templates/hello", map[string]any{
			"person": greeting{FirstName: "Jamaria", Hidden: "secret"},
		}, w)
	})

	if rendered != "contact: hello Jamaria" {
		t.Fatalf("unexpected output %q", rendered)
	}
	if rendered != written {
		t.Fatalf("writer received %q, want %q", written, rendered)
	}
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderString(`{{ items|length }} {{ title|upper }}`, map[string]any{
		"items": []string{"a", "b"},
		"title": "form",
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "2 FORM" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEngine_EscapesValues(t *testing.T) {
	engine := newEngine(t)

	out, err := engine.RenderString(`{{ value }}`, map[string]any{"value": `<script>x</script>`})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("value was not escaped: %q", out)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without a template source")
	}

	engine := newEngine(t)
	if _, err := engine.RenderTemplate("templates/missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}
