package validation

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Evaluator applies field rules using a shared validator instance. The zero
// value is not usable; call NewEvaluator or Default.
type Evaluator struct {
	validate *validator.Validate
}

var (
	defaultOnce      sync.Once
	defaultEvaluator *Evaluator
)

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithValidator runs rules through v, so callers can register their own
// implementations of the built-in tags.
func WithValidator(v *validator.Validate) EvaluatorOption {
	return func(e *Evaluator) {
		if v != nil {
			e.validate = v
		}
	}
}

// NewEvaluator constructs an Evaluator with its own validator instance.
func NewEvaluator(options ...EvaluatorOption) *Evaluator {
	e := &Evaluator{validate: validator.New()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Default returns the process-wide Evaluator. validator.Validate caches
// struct metadata and is safe for concurrent use.
func Default() *Evaluator {
	defaultOnce.Do(func() {
		defaultEvaluator = NewEvaluator()
	})
	return defaultEvaluator
}

// Evaluate checks value against the field's rules in order and returns the
// message of the first failing rule. A field that is not required and is
// empty passes without consulting its remaining rules.
func (e *Evaluator) Evaluate(field model.Field, value string) (string, bool) {
	if value == "" && !field.Required {
		return "", true
	}

	for _, rule := range field.Validations {
		tag, message := e.describe(field.Name, rule)
		if tag == "" {
			continue
		}
		if err := e.validate.Var(value, tag); err != nil {
			return message, false
		}
	}
	return "", true
}

// EvaluateAll runs Evaluate for every field of the form against values and
// returns the failing entries. Missing values are treated as empty strings.
func (e *Evaluator) EvaluateAll(form model.FormModel, values map[string]string) Errors {
	errs := make(Errors)
	for _, field := range form.Fields {
		if message, ok := e.Evaluate(field, values[field.Name]); !ok {
			errs[field.Name] = message
		}
	}
	return errs
}

// Evaluate uses the Default evaluator.
func Evaluate(field model.Field, value string) (string, bool) {
	return Default().Evaluate(field, value)
}

func (e *Evaluator) describe(name string, rule model.ValidationRule) (string, string) {
	switch rule.Kind {
	case model.ValidationRuleRequired:
		return "required", RequiredMessage(name)
	case model.ValidationRuleMinLength:
		n, err := strconv.Atoi(rule.Params["value"])
		if err != nil || n <= 0 {
			return "", ""
		}
		return "min=" + strconv.Itoa(n), MinLengthMessage(name, n)
	case model.ValidationRuleEmail:
		// An email rule owns emptiness too: a blank address reports the
		// format message, not the required one.
		return "required,email", EmailMessage(name)
	default:
		return "", ""
	}
}

// RequiredMessage is reported when a required field is empty.
func RequiredMessage(field string) string {
	return field + " is a required field."
}

// MinLengthMessage is reported when a value has fewer than n characters.
func MinLengthMessage(field string, n int) string {
	return fmt.Sprintf("%s must have at least %d characters.", field, n)
}

// EmailMessage is reported when a value is not a local@domain.tld address.
func EmailMessage(field string) string {
	return field + " must be a valid email address."
}
