package httputil

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent JSON field from an explicit null in
// PATCH bodies (RFC 7396):
//   - Present=false: field absent, leave unchanged
//   - Present=true, Value=nil: field is null, clear it
//   - Present=true, Value!=nil: set to *Value
type Optional[T any] struct {
	Present bool
	Value   *T
}

// UnmarshalJSON is only called for fields present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Set reports whether the field was present with a non-null value.
func (o Optional[T]) Set() bool {
	return o.Present && o.Value != nil
}

// Cleared reports whether the field was an explicit null.
func (o Optional[T]) Cleared() bool {
	return o.Present && o.Value == nil
}
