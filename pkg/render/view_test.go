package render_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/engine"
	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func TestBuildView_NoSnapshotNoEcho(t *testing.T) {
	form := model.MustContactForm()
	e := engine.New(form)
	e.Submit()

	view := render.BuildView(form, render.StateOf(e))

	if view.Submitted || len(view.Echo) != 0 {
		t.Fatalf("echo rendered without snapshot: %#v", view.Echo)
	}
	want := []validation.FieldError{
		{Field: "firstName", Message: "firstName is a required field."},
		{Field: "lastName", Message: "lastName is a required field."},
		{Field: "email", Message: "email must be a valid email address."},
	}
	if diff := cmp.Diff(want, view.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if view.Fields[0].Error != "firstName is a required field." || view.Fields[3].Error != "" {
		t.Fatalf("per-field errors mismatch: %#v", view.Fields)
	}
}

func TestBuildView_EchoesEveryField(t *testing.T) {
	form := model.MustContactForm()
	e := engine.New(form, engine.WithIDGenerator(func() string { return "abc" }))
	e.SetField("firstName", "Jamaria")
	e.SetField("lastName", "Sims")
	e.SetField("email", "JamariaxSims@gmail.com")
	if !e.Submit() {
		t.Fatalf("submit failed: %v", e.Errors())
	}

	view := render.BuildView(form, render.StateOf(e))

	want := []render.EchoView{
		{Name: "firstName", Label: "First Name*", Value: "Jamaria", TestID: "firstnameDisplay"},
		{Name: "lastName", Label: "Last Name*", Value: "Sims", TestID: "lastnameDisplay"},
		{Name: "email", Label: "Email*", Value: "JamariaxSims@gmail.com", TestID: "emailDisplay"},
		{Name: "message", Label: "Message", Value: "", TestID: "messageDisplay"},
	}
	if diff := cmp.Diff(want, view.Echo); diff != "" {
		t.Fatalf("echo mismatch (-want +got):\n%s", diff)
	}
	if view.SubmissionID != "abc" || len(view.Errors) != 0 {
		t.Fatalf("unexpected view state: %#v", view)
	}
}

func TestNormalizeHidden(t *testing.T) {
	got := render.NormalizeHidden([]render.HiddenField{
		render.CSRFToken(" _csrf ", "one"),
		{Name: "  ", Value: "skip"},
		{Name: "form", Value: "contact"},
		render.CSRFToken("_csrf", "two"),
	})
	want := []render.HiddenField{
		{Name: "_csrf", Value: "two"},
		{Name: "form", Value: "contact"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
	if render.NormalizeHidden(nil) != nil {
		t.Fatalf("expected nil for no fields")
	}
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(render.JSONRenderer{})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if err := registry.Register(render.JSONRenderer{Indent: true}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := registry.Get("missing"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected missing renderer error")
	}
	if diff := cmp.Diff([]string{"json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRenderer(t *testing.T) {
	form := model.MustContactForm()
	out, err := render.JSONRenderer{}.Render(context.Background(), form, render.RenderOptions{
		Values: map[string]string{"firstName": "test"},
		Errors: validation.Errors{"firstName": "firstName must have at least 5 characters."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var view render.FormView
	if err := json.Unmarshal(out, &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Title != "Contact Form" || view.Fields[0].Value != "test" || len(view.Errors) != 1 {
		t.Fatalf("unexpected view: %#v", view)
	}
}
