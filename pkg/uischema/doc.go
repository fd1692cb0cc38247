// Package uischema loads the layout documents that describe a contact form:
// title, description, field order, labels, placeholders, and the validation
// constraints attached to each field. Documents are YAML or JSON and are keyed
// by form id so a single file may describe several forms. The bundled default
// lives under ui/schema and is exposed through EmbeddedFS.
package uischema
