package uischema

import (
	"embed"
	"io/fs"
)

//go:embed ui/schema/*
var embeddedSchema embed.FS

// DefaultFormID identifies the contact form shipped with the embedded bundle.
const DefaultFormID = "contact"

// EmbeddedFS returns the bundled layout documents. Callers may pass this
// filesystem to LoadFS to use the default configuration.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSchema, "ui/schema")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the embedded bundle and returns the default contact form.
func Default() (Form, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return Form{}, err
	}
	form, ok := store.Form(DefaultFormID)
	if !ok {
		return Form{}, ErrFormNotFound
	}
	return form, nil
}
