package openapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/model"
)

const (
	schemaSubmission = "ContactSubmission"
	schemaFieldError = "FieldError"
	schemaState      = "FormState"
	schemaSnapshot   = "Snapshot"
	schemaFieldValue = "FieldValue"

	extensionWidget      = "x-contactform-widget"
	extensionOrder       = "x-contactform-order"
	extensionValidateOn  = "x-contactform-validate-on"
	extensionLabel       = "x-contactform-label"
	extensionPlaceholder = "x-contactform-placeholder"
)

// ExportOptions tweak the generated document.
type ExportOptions struct {
	Title   string
	Version string
	// ServerURL, when set, is listed as the single server entry.
	ServerURL string
}

// Export builds the OpenAPI description of the HTTP surface serving form.
// The submission schema mirrors the form's validation rules.
func Export(form model.FormModel, opts ExportOptions) (*openapi3.T, error) {
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("openapi: form %q has no fields", form.ID)
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = form.Title
	}
	if title == "" {
		title = "Contact form"
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "1.0.0"
	}

	submission := SubmissionSchema(form)
	fieldError := openapi3.NewObjectSchema().
		WithProperty("field", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema())
	fieldError.Required = []string{"field", "message"}

	valuesSchema := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	snapshot := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("submittedAt", openapi3.NewDateTimeSchema()).
		WithProperty("values", valuesSchema)
	snapshot.Required = []string{"id", "submittedAt", "values"}

	fieldValue := openapi3.NewObjectSchema().WithProperty("value", openapi3.NewStringSchema())
	fieldValue.Required = []string{"value"}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: form.Description,
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				schemaSubmission: openapi3.NewSchemaRef("", submission),
				schemaFieldError: openapi3.NewSchemaRef("", fieldError),
				schemaSnapshot:   openapi3.NewSchemaRef("", snapshot),
				schemaFieldValue: openapi3.NewSchemaRef("", fieldValue),
			},
		},
	}
	if opts.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: opts.ServerURL}}
	}

	submissionRef := componentRef(schemaSubmission, submission)
	errorList := openapi3.NewArraySchema().WithItems(fieldError)
	errorsRef := openapi3.NewSchemaRef("", openapi3.NewObjectSchema().WithProperty("errors", errorList))
	snapshotRef := componentRef(schemaSnapshot, snapshot)

	state := openapi3.NewObjectSchema().
		WithProperty("values", valuesSchema).
		WithProperty("errors", errorList)
	state.Properties["snapshot"] = snapshotRef
	doc.Components.Schemas[schemaState] = openapi3.NewSchemaRef("", state)
	stateRef := componentRef(schemaState, state)

	doc.Paths = openapi3.NewPaths(
		openapi3.WithPath("/api/fields/{name}", &openapi3.PathItem{
			Put: &openapi3.Operation{
				OperationID: "setField",
				Summary:     "Store one field value; validate-on-change fields are revalidated",
				Parameters: openapi3.Parameters{
					{Value: openapi3.NewPathParameter("name").WithSchema(fieldNameSchema(form))},
				},
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(componentRef(schemaFieldValue, fieldValue)),
				},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, jsonResponse("Current form state", stateRef)),
					openapi3.WithStatus(404, jsonResponse("Unknown field", errorsRef)),
				),
			},
		}),
		openapi3.WithPath("/api/validate", &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "validateAll",
				Summary:     "Compute the error set for the current values without recording it",
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, jsonResponse("Errors for the current values", errorsRef)),
				),
			},
		}),
		openapi3.WithPath("/api/submit", &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "submit",
				Summary:     "Validate every field and snapshot the values when none fail",
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithJSONSchemaRef(submissionRef),
				},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, jsonResponse("Accepted submission", snapshotRef)),
					openapi3.WithStatus(422, jsonResponse("Validation failed", errorsRef)),
				),
			},
		}),
		openapi3.WithPath("/api/snapshot", &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "snapshot",
				Summary:     "Return the last accepted submission",
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, jsonResponse("Last accepted submission", snapshotRef)),
					openapi3.WithStatus(404, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Nothing submitted yet")}),
				),
			},
		}),
		openapi3.WithPath("/api/state", &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "state",
				Summary:     "Return the current form state",
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, jsonResponse("Current form state", stateRef)),
				),
			},
		}),
		openapi3.WithPath("/api/reset", &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "reset",
				Summary:     "Return the session to its freshly mounted state",
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, jsonResponse("Current form state", stateRef)),
				),
			},
		}),
	)

	return doc, nil
}

// SubmissionSchema converts the form's fields into an object schema. Only
// fields that reject an empty value are listed as required.
func SubmissionSchema(form model.FormModel) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = form.Title
	schema.Description = form.Description
	for idx, field := range form.Fields {
		prop := openapi3.NewStringSchema()
		prop.Extensions = map[string]any{
			extensionOrder:  idx,
			extensionWidget: string(field.Widget),
		}
		if field.Label != "" {
			prop.Extensions[extensionLabel] = field.Label
		}
		if field.Placeholder != "" {
			prop.Extensions[extensionPlaceholder] = field.Placeholder
		}
		if field.ValidateOnChange {
			prop.Extensions[extensionValidateOn] = "change"
		}
		required := field.Required
		for _, rule := range field.Validations {
			switch rule.Kind {
			case model.ValidationRuleMinLength:
				if n, err := strconv.Atoi(rule.Params["value"]); err == nil && n >= 0 {
					prop.WithMinLength(int64(n))
				}
			case model.ValidationRuleEmail:
				prop.WithFormat("email")
			case model.ValidationRuleRequired:
				required = true
			}
		}
		schema.WithProperty(field.Name, prop)
		if required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

// Validate runs kin-openapi's document validation.
func Validate(ctx context.Context, doc *openapi3.T) error {
	if doc == nil {
		return fmt.Errorf("openapi: document is nil")
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("openapi: validate: %w", err)
	}
	return nil
}

// MarshalJSON exports form and encodes the result.
func MarshalJSON(form model.FormModel, opts ExportOptions) ([]byte, error) {
	doc, err := Export(form, opts)
	if err != nil {
		return nil, err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return data, nil
}

func componentRef(name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema)
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema)}
}

func fieldNameSchema(form model.FormModel) *openapi3.Schema {
	names := make([]any, 0, len(form.Fields))
	for _, name := range form.FieldNames() {
		names = append(names, name)
	}
	return openapi3.NewStringSchema().WithEnum(names...)
}
