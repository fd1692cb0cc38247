package model

import internalmodel "github.com/goliatone/go-contactform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString = internalmodel.FieldTypeString
)

// Widget re-exports the internal Widget enumeration.
type Widget = internalmodel.Widget

const (
	WidgetInput    = internalmodel.WidgetInput
	WidgetTextarea = internalmodel.WidgetTextarea
)

const (
	ValidationRuleRequired  = internalmodel.ValidationRuleRequired
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleEmail     = internalmodel.ValidationRuleEmail
)

type ValidationRule = internalmodel.ValidationRule
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
