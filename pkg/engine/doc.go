// Package engine implements the contact form's validation and
// submission-echo state machine.
//
// An Engine owns three pieces of state for one mounted form: the current
// field values (every declared field is always present, defaulting to ""),
// the current validation errors (at most one message per failing field), and
// the snapshot taken at the last successful submit. Edits go through
// SetField; fields flagged validate-on-change have their own error entry
// recomputed on every edit. Submit recomputes every entry from scratch and,
// when nothing fails, replaces the snapshot wholesale. A failed submit leaves
// any earlier snapshot in place.
//
// Validation failures are data, never Go errors. An Engine is not safe for
// concurrent use; callers serving several goroutines wrap it (see
// internal/session).
package engine
