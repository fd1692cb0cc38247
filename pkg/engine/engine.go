package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

// Errors maps failing field names to their single message.
type Errors = validation.Errors

// Option configures an Engine.
type Option func(*Engine)

// WithEvaluator overrides the rule evaluator.
func WithEvaluator(evaluator *validation.Evaluator) Option {
	return func(e *Engine) {
		if evaluator != nil {
			e.evaluator = evaluator
		}
	}
}

// WithClock overrides the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDGenerator overrides how snapshot ids are minted.
func WithIDGenerator(next func() string) Option {
	return func(e *Engine) {
		if next != nil {
			e.newID = next
		}
	}
}

// Engine holds the state of one mounted form.
type Engine struct {
	form      model.FormModel
	evaluator *validation.Evaluator
	now       func() time.Time
	newID     func() string

	values   Values
	errors   Errors
	snapshot *Snapshot
}

// New mounts a form: every declared field starts empty, no errors are
// recorded, and no snapshot exists.
func New(form model.FormModel, options ...Option) *Engine {
	e := &Engine{
		form:      form,
		evaluator: validation.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	e.Reset()
	return e
}

// Reset returns the engine to its freshly mounted state.
func (e *Engine) Reset() {
	e.values = make(Values, len(e.form.Fields))
	for _, field := range e.form.Fields {
		e.values[field.Name] = ""
	}
	e.errors = make(Errors)
	e.snapshot = nil
}

// Form returns the model the engine was mounted with.
func (e *Engine) Form() model.FormModel { return e.form }

// Fields lists the declared field names in form order.
func (e *Engine) Fields() []string { return e.form.FieldNames() }

// Has reports whether name is a declared field.
func (e *Engine) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// SetField stores value for name. For validate-on-change fields the field's
// own error entry is recomputed; other entries are left untouched. Unknown
// names are ignored.
func (e *Engine) SetField(name, value string) {
	if !e.Has(name) {
		return
	}
	e.values[name] = value

	field, _ := e.form.Field(name)
	if !field.ValidateOnChange {
		return
	}
	if message, ok := e.evaluator.Evaluate(field, value); ok {
		delete(e.errors, name)
	} else {
		e.errors[name] = message
	}
}

// Check evaluates value against the named field's rules without storing
// anything. Unknown fields pass.
func (e *Engine) Check(name, value string) (string, bool) {
	field, ok := e.form.Field(name)
	if !ok {
		return "", true
	}
	return e.evaluator.Evaluate(field, value)
}

// Value returns the current content of a field.
func (e *Engine) Value(name string) string { return e.values[name] }

// Values returns a copy of every field's current content.
func (e *Engine) Values() Values { return e.values.Clone() }

// ValidateAll computes a fresh error set from the current values. It mutates
// nothing and returns the same result until a value changes.
func (e *Engine) ValidateAll() Errors {
	return e.evaluator.EvaluateAll(e.form, e.values)
}

// Submit replaces the recorded errors with a full validation pass. When no
// field fails, a new snapshot of the current values replaces the previous
// one and Submit reports true. Otherwise the previous snapshot, if any, is
// kept and Submit reports false.
func (e *Engine) Submit() bool {
	e.errors = e.ValidateAll()
	if len(e.errors) > 0 {
		return false
	}
	e.snapshot = &Snapshot{
		id:          e.newID(),
		submittedAt: e.now(),
		values:      e.values.Clone(),
	}
	return true
}

// Errors returns a copy of the recorded errors.
func (e *Engine) Errors() Errors { return e.errors.Clone() }

// Error returns the recorded message for a field.
func (e *Engine) Error(name string) (string, bool) {
	message, ok := e.errors[name]
	return message, ok
}

// Snapshot returns the last accepted submission, if any.
func (e *Engine) Snapshot() (Snapshot, bool) {
	if e.snapshot == nil {
		return Snapshot{}, false
	}
	return *e.snapshot, true
}
