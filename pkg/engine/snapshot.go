package engine

import (
	"encoding/json"
	"time"
)

// Values maps field names to their current string content.
type Values map[string]string

// Clone returns an independent copy of the values.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

// Snapshot is an immutable copy of the values accepted by a successful
// submit. The zero Snapshot is never handed out by an Engine.
type Snapshot struct {
	id          string
	submittedAt time.Time
	values      Values
}

// ID uniquely identifies the submission.
func (s Snapshot) ID() string { return s.id }

// SubmittedAt reports when the submission was accepted.
func (s Snapshot) SubmittedAt() time.Time { return s.submittedAt }

// Value returns the submitted content of a field; optional fields that were
// left blank echo as "".
func (s Snapshot) Value(name string) string { return s.values[name] }

// Values returns a copy of every submitted value.
func (s Snapshot) Values() Values { return s.values.Clone() }

type snapshotJSON struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
	Values      Values    `json:"values"`
}

// MarshalJSON encodes the snapshot for API responses.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		ID:          s.id,
		SubmittedAt: s.submittedAt,
		Values:      s.values,
	})
}
