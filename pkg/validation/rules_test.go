package validation_test

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func contactForm(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.ContactForm()
	if err != nil {
		t.Fatalf("contact form: %v", err)
	}
	return form
}

func TestEvaluate_ContactRules(t *testing.T) {
	form := contactForm(t)

	cases := []struct {
		field string
		value string
		want  string
	}{
		{"firstName", "", "firstName is a required field."},
		{"firstName", "test", "firstName must have at least 5 characters."},
		{"firstName", "testman", ""},
		{"firstName", "Zoë Ω", ""},
		{"lastName", "", "lastName is a required field."},
		{"lastName", "Sims", ""},
		{"email", "", "email must be a valid email address."},
		{"email", "testman.com", "email must be a valid email address."},
		{"email", "JamariaxSims@gmail.com", ""},
		{"message", "", ""},
		{"message", "hi", ""},
	}

	for _, tc := range cases {
		t.Run(tc.field+"/"+tc.value, func(t *testing.T) {
			field, ok := form.Field(tc.field)
			if !ok {
				t.Fatalf("field %s missing", tc.field)
			}
			got, valid := validation.Evaluate(field, tc.value)
			if valid != (tc.want == "") {
				t.Fatalf("valid=%v for %q, want message %q", valid, tc.value, tc.want)
			}
			if got != tc.want {
				t.Fatalf("message mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestEvaluate_OptionalFieldSkipsRulesWhenEmpty(t *testing.T) {
	field := model.Field{
		Name: "nickname",
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
		},
	}

	if _, ok := validation.Evaluate(field, ""); !ok {
		t.Fatalf("empty optional field should pass")
	}
	msg, ok := validation.Evaluate(field, "ab")
	if ok || msg != "nickname must have at least 3 characters." {
		t.Fatalf("unexpected result %v %q", ok, msg)
	}
}

func TestNewEvaluator_WithValidator(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("min", func(validator.FieldLevel) bool { return true }); err != nil {
		t.Fatalf("register: %v", err)
	}
	field := model.Field{
		Name:     "firstName",
		Required: true,
		Validations: []model.ValidationRule{
			{Kind: model.ValidationRuleRequired},
			{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "5"}},
		},
	}

	if _, ok := validation.NewEvaluator(validation.WithValidator(v)).Evaluate(field, "Jo"); !ok {
		t.Fatalf("custom min should accept short values")
	}
	if _, ok := validation.NewEvaluator().Evaluate(field, "Jo"); ok {
		t.Fatalf("default min should reject short values")
	}
}

func TestEvaluateAll_DefaultStateHasThreeErrors(t *testing.T) {
	form := contactForm(t)

	errs := validation.Default().EvaluateAll(form, nil)

	want := validation.Errors{
		"firstName": "firstName is a required field.",
		"lastName":  "lastName is a required field.",
		"email":     "email must be a valid email address.",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors_Ordered(t *testing.T) {
	form := contactForm(t)
	errs := validation.Errors{
		"email":     "e",
		"zzz":       "z",
		"firstName": "f",
		"aaa":       "a",
	}

	want := []validation.FieldError{
		{Field: "firstName", Message: "f"},
		{Field: "email", Message: "e"},
		{Field: "aaa", Message: "a"},
		{Field: "zzz", Message: "z"},
	}
	if diff := cmp.Diff(want, errs.Ordered(form)); diff != "" {
		t.Fatalf("ordered mismatch (-want +got):\n%s", diff)
	}
	if validation.Errors(nil).Ordered(form) != nil {
		t.Fatalf("expected nil for empty errors")
	}
}

func TestErrors_CloneIsIndependent(t *testing.T) {
	errs := validation.Errors{"firstName": "x"}
	clone := errs.Clone()
	clone["lastName"] = "y"
	if errs.Has("lastName") {
		t.Fatalf("clone shares storage with original")
	}
	if got := validation.Errors(nil).Clone(); got == nil || len(got) != 0 {
		t.Fatalf("nil clone should be an empty map, got %#v", got)
	}
}

func TestMessages(t *testing.T) {
	if got := validation.MinLengthMessage("firstName", 5); !strings.Contains(got, "at least 5 characters") {
		t.Fatalf("unexpected min length message %q", got)
	}
}
