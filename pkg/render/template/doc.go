// Package template defines the template seam the HTML renderer depends on.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template
