package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/uischema"
)

func TestBuilder_DefaultContactForm(t *testing.T) {
	layout, err := uischema.Default()
	if err != nil {
		t.Fatalf("default layout: %v", err)
	}

	form, err := New(Options{}).Build(layout)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []Field{
		{
			Name: "firstName", Type: FieldTypeString, Widget: WidgetInput, Required: true,
			Label: "First Name*", Placeholder: "Edd", ValidateOnChange: true,
			Validations: []ValidationRule{
				{Kind: ValidationRuleRequired},
				{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "5"}},
			},
		},
		{
			Name: "lastName", Type: FieldTypeString, Widget: WidgetInput, Required: true,
			Label: "Last Name*", Placeholder: "Burke",
			Validations: []ValidationRule{{Kind: ValidationRuleRequired}},
		},
		{
			Name: "email", Type: FieldTypeString, Widget: WidgetInput, Format: "email", Required: true,
			Label: "Email*", Placeholder: "bluebill1049@hotmail.com",
			Validations: []ValidationRule{{Kind: ValidationRuleEmail}},
		},
		{
			Name: "message", Type: FieldTypeString, Widget: WidgetTextarea, Label: "Message",
		},
	}
	if diff := cmp.Diff(want, form.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if form.ID != "contact" || form.Title != "Contact Form" || form.Method != "POST" {
		t.Fatalf("form header mismatch: %#v", form)
	}
}

func TestBuilder_LabelFallback(t *testing.T) {
	layout := uischema.Form{ID: "x", Fields: []uischema.FieldConfig{{Name: "lastName"}, {Name: "reply_to"}}}

	form, err := New(Options{}).Build(layout)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got := []string{form.Fields[0].Label, form.Fields[1].Label}
	if diff := cmp.Diff([]string{"Last Name", "Reply To"}, got); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	custom, err := New(Options{Labeler: func(string) string { return "X" }}).Build(layout)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if custom.Fields[0].Label != "X" {
		t.Fatalf("custom labeler ignored: %q", custom.Fields[0].Label)
	}
}

func TestBuilder_Errors(t *testing.T) {
	if _, err := New(Options{}).Build(uischema.Form{Fields: []uischema.FieldConfig{{Name: "a"}}}); err != errFormIDMissing {
		t.Fatalf("expected missing id error, got %v", err)
	}
	if _, err := New(Options{}).Build(uischema.Form{ID: "a"}); err != errFormFieldsMissing {
		t.Fatalf("expected missing fields error, got %v", err)
	}
}

func TestValidateField_RejectsUnknownRule(t *testing.T) {
	err := validateField(Field{Name: "a", Validations: []ValidationRule{{Kind: "pattern"}}})
	if err == nil {
		t.Fatalf("expected error for unknown rule")
	}
	err = validateField(Field{Name: "a", Validations: []ValidationRule{{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "x"}}}})
	if err == nil {
		t.Fatalf("expected error for malformed minLength")
	}
}
