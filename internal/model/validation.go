package model

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	errFormIDMissing     = errors.New("model builder: form id is required")
	errFormFieldsMissing = errors.New("model builder: form declares no fields")
)

func validateForm(form FormModel) error {
	if form.ID == "" {
		return errFormIDMissing
	}
	if len(form.Fields) == 0 {
		return errFormFieldsMissing
	}
	for _, field := range form.Fields {
		if err := validateField(field); err != nil {
			return fmt.Errorf("model builder: field %q: %w", field.Name, err)
		}
	}
	return nil
}

func validateField(field Field) error {
	for _, rule := range field.Validations {
		switch rule.Kind {
		case ValidationRuleRequired, ValidationRuleEmail:
		case ValidationRuleMinLength:
			n, err := strconv.Atoi(rule.Params["value"])
			if err != nil || n < 0 {
				return fmt.Errorf("minLength requires a non-negative integer, got %q", rule.Params["value"])
			}
		default:
			return fmt.Errorf("unknown validation rule %q", rule.Kind)
		}
	}
	return nil
}
