package model

import (
	"fmt"

	"github.com/goliatone/go-contactform/internal/model"
	"github.com/goliatone/go-contactform/pkg/uischema"
)

// Builder converts layout documents into form models.
type Builder interface {
	Build(layout uischema.Form) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}

// ContactForm builds the form model for the embedded default layout.
func ContactForm() (FormModel, error) {
	layout, err := uischema.Default()
	if err != nil {
		return FormModel{}, fmt.Errorf("model: load default layout: %w", err)
	}
	return NewBuilder().Build(layout)
}

// MustContactForm is ContactForm for init-time wiring; it panics on failure.
func MustContactForm() FormModel {
	form, err := ContactForm()
	if err != nil {
		panic(err)
	}
	return form
}
