package openapi_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/openapi"
	"github.com/goliatone/go-contactform/pkg/uischema"
)

func contactForm(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.ContactForm()
	if err != nil {
		t.Fatalf("contact form: %v", err)
	}
	return form
}

func TestExport_ValidDocument(t *testing.T) {
	doc, err := openapi.Export(contactForm(t), openapi.ExportOptions{Version: "2.0.0", ServerURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := openapi.Validate(context.Background(), doc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if doc.Info.Title != "Contact Form" || doc.Info.Version != "2.0.0" {
		t.Fatalf("unexpected info %+v", doc.Info)
	}
	for _, path := range []string{"/api/fields/{name}", "/api/validate", "/api/submit", "/api/snapshot", "/api/state", "/api/reset"} {
		if doc.Paths.Value(path) == nil {
			t.Fatalf("path %s missing", path)
		}
	}
}

func TestSubmissionSchema_MirrorsRules(t *testing.T) {
	schema := openapi.SubmissionSchema(contactForm(t))

	if diff := cmp.Diff([]string{"firstName", "lastName", "email"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := schema.Properties["firstName"].Value.MinLength; got != 5 {
		t.Fatalf("firstName minLength = %d, want 5", got)
	}
	if got := schema.Properties["email"].Value.Format; got != "email" {
		t.Fatalf("email format = %q", got)
	}
	if _, ok := schema.Properties["message"]; !ok {
		t.Fatalf("message property missing")
	}
}

func TestSubmissionSchema_IgnoresInvalidMinLength(t *testing.T) {
	form := model.FormModel{
		ID: "bad",
		Fields: []model.Field{
			{Name: "negative", Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "-3"}},
			}},
			{Name: "word", Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "five"}},
			}},
		},
	}

	schema := openapi.SubmissionSchema(form)
	for _, name := range []string{"negative", "word"} {
		if got := schema.Properties[name].Value.MinLength; got != 0 {
			t.Fatalf("%s minLength = %d, want 0", name, got)
		}
	}
}

func TestImportForm_RoundTrip(t *testing.T) {
	original := contactForm(t)
	data, err := openapi.MarshalJSON(original, openapi.ExportOptions{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !json.Valid(data) {
		t.Fatalf("exported document is not valid JSON")
	}

	layout, err := openapi.ImportForm(context.Background(), data, "ContactSubmission", "contact")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	rebuilt, err := model.NewBuilder().Build(layout)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if diff := cmp.Diff(original.Fields, rebuilt.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if rebuilt.Title != original.Title {
		t.Fatalf("title mismatch: %q vs %q", rebuilt.Title, original.Title)
	}
}

func TestImportForm_RoundTripOptionalEmail(t *testing.T) {
	layout, err := uischema.Normalize(uischema.Form{
		Title: "Callback",
		Fields: []uischema.FieldConfig{
			{Name: "name", Required: true},
			{Name: "backup", Format: uischema.FormatEmail},
		},
	}, "callback", "test")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	original, err := model.NewBuilder().Build(layout)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	schema := openapi.SubmissionSchema(original)
	if diff := cmp.Diff([]string{"name"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := schema.Properties["backup"].Value.Format; got != "email" {
		t.Fatalf("backup format = %q", got)
	}

	data, err := openapi.MarshalJSON(original, openapi.ExportOptions{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	imported, err := openapi.ImportForm(context.Background(), data, "ContactSubmission", "callback")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	rebuilt, err := model.NewBuilder().Build(imported)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if diff := cmp.Diff(original.Fields, rebuilt.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestImportForm_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := openapi.ImportForm(ctx, nil, "X", "x"); err == nil {
		t.Fatalf("expected error for empty payload")
	}

	doc := []byte(`{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{},
"components":{"schemas":{"Bad":{"type":"object","properties":{"age":{"type":"integer"}}}}}}`)
	if _, err := openapi.ImportForm(ctx, doc, "Missing", "x"); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
	if _, err := openapi.ImportForm(ctx, doc, "Bad", "x"); err == nil {
		t.Fatalf("expected error for non-string property")
	}
}
