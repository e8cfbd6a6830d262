package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the data directory does not exist. The
	// wrapped error also matches fs.ErrNotExist.
	ErrNotFound = errors.New("dataset: data directory not found")
	// ErrParse is matched by every ParseError.
	ErrParse = errors.New("dataset: parse error")
)

// ParseError reports a data file whose content is not a single YAML mapping.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dataset: parse %s", e.Name)
	}
	return fmt.Sprintf("dataset: parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrParse) match.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

type notFoundError struct {
	location string
	err      error
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("dataset: data directory %s: %v", e.location, e.err)
}

func (e *notFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.err}
}

// NotFound wraps err so it matches both ErrNotFound and the underlying
// filesystem error.
func NotFound(location string, err error) error {
	return &notFoundError{location: location, err: err}
}
