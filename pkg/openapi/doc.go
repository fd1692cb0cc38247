// Package openapi describes the contact form HTTP API as an OpenAPI 3 document
// and reads form layouts back out of OpenAPI component schemas.
//
// Export derives the request and response schemas from a FormModel, so the
// document always matches the rules the engine enforces. ImportForm accepts
// an object schema (string properties with minLength/format and the
// x-contactform-* extensions) and produces a uischema.Form ready for the
// model builder.
package openapi
