package testsupport

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/goliatone/go-contactform/pkg/engine"
	pkgmodel "github.com/goliatone/go-contactform/pkg/model"
)

// FixedTime is the submit time stamped by engines from NewEngine.
var FixedTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ContactForm returns the bundled contact form model or fails the test.
func ContactForm(t testing.TB) pkgmodel.FormModel {
	t.Helper()

	form, err := pkgmodel.ContactForm()
	if err != nil {
		t.Fatalf("contact form: %v", err)
	}
	return form
}

// NewEngine mounts a deterministic engine over the contact form: submits are
// stamped with FixedTime and numbered "sub-1", "sub-2", and so on. values
// are applied through SetField in field order.
func NewEngine(t testing.TB, values map[string]string) *engine.Engine {
	t.Helper()

	seq := 0
	e := engine.New(ContactForm(t),
		engine.WithClock(func() time.Time { return FixedTime }),
		engine.WithIDGenerator(func() string {
			seq++
			return "sub-" + strconv.Itoa(seq)
		}),
	)
	for _, name := range e.Fields() {
		if value, ok := values[name]; ok {
			e.SetField(name, value)
		}
	}
	return e
}

// ValidSubmission is a set of values every contact form rule accepts.
func ValidSubmission() map[string]string {
	return map[string]string{
		"firstName": "Jamaria",
		"lastName":  "Sims",
		"email":     "JamariaxSims@gmail.com",
		"message":   "",
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
