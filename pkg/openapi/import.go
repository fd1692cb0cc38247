package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-contactform/pkg/uischema"
)

// ImportForm reads the named component schema out of an OpenAPI document and
// converts it into a form layout. Only string properties are accepted.
func ImportForm(ctx context.Context, data []byte, schemaName, formID string) (uischema.Form, error) {
	if err := ctx.Err(); err != nil {
		return uischema.Form{}, err
	}
	if len(data) == 0 {
		return uischema.Form{}, fmt.Errorf("openapi: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return uischema.Form{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return uischema.Form{}, fmt.Errorf("openapi: document has no components")
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return uischema.Form{}, fmt.Errorf("openapi: schema %q not found", schemaName)
	}
	schema := ref.Value
	if !schema.Type.Is(openapi3.TypeObject) {
		return uischema.Form{}, fmt.Errorf("openapi: schema %q is not an object", schemaName)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	type orderedField struct {
		order int
		cfg   uischema.FieldConfig
	}
	fields := make([]orderedField, 0, len(schema.Properties))
	for name, propRef := range schema.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		prop := propRef.Value
		if !prop.Type.Is(openapi3.TypeString) {
			return uischema.Form{}, fmt.Errorf("openapi: property %q must be a string", name)
		}
		cfg := uischema.FieldConfig{
			Name:        name,
			Label:       extensionString(prop.Extensions, extensionLabel, prop.Title),
			Placeholder: extensionString(prop.Extensions, extensionPlaceholder, ""),
			Widget:      extensionString(prop.Extensions, extensionWidget, ""),
			ValidateOn:  extensionString(prop.Extensions, extensionValidateOn, ""),
			Format:      prop.Format,
			MinLength:   int(prop.MinLength),
		}
		cfg.Required = required[name]
		order, ok := extensionInt(prop.Extensions, extensionOrder)
		if !ok {
			order = len(schema.Properties)
		}
		fields = append(fields, orderedField{order: order, cfg: cfg})
	}
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].order != fields[j].order {
			return fields[i].order < fields[j].order
		}
		return fields[i].cfg.Name < fields[j].cfg.Name
	})

	form := uischema.Form{
		Title:       firstNonEmpty(schema.Title, schemaName),
		Description: schema.Description,
	}
	for _, field := range fields {
		form.Fields = append(form.Fields, field.cfg)
	}
	return uischema.Normalize(form, formID, "openapi:"+schemaName)
}

func extensionString(ext map[string]any, key, fallback string) string {
	if value, ok := ext[key].(string); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func extensionInt(ext map[string]any, key string) (int, bool) {
	switch v := ext[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
