package record

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is matched by every MissingFieldError.
	ErrMissingField = errors.New("record: missing required field")
	// ErrInvalidSlug signals a provider_slug that cannot act as a grouping key.
	ErrInvalidSlug = errors.New("record: invalid provider slug")
)

// MissingFieldError reports a record lacking build or provider_slug.
type MissingFieldError struct {
	Field string
	// Source names the data file the record came from, when known.
	Source string
}

func (e *MissingFieldError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("record: %s: missing required field %q", e.Source, e.Field)
	}
	return fmt.Sprintf("record: missing required field %q", e.Field)
}

// Is lets errors.Is(err, ErrMissingField) match.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
