// Package validation evaluates the declarative rules attached to model.Field
// values. Evaluate is the single per-field rule function: the engine calls it
// for validate-on-change edits and again for every field on submit, so both
// paths always agree. Checks are delegated to go-playground/validator tags
// (required, min=N, email); messages follow the "<field> is a required
// field." family and are fixed per rule kind.
package validation
