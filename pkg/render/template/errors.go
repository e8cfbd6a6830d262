package template

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the template file does not exist. The
	// wrapped error also matches fs.ErrNotExist.
	ErrNotFound = errors.New("template: not found")
	// ErrSyntax is matched by every SyntaxError.
	ErrSyntax = errors.New("template: syntax error")
	// ErrRender is matched by every RenderError.
	ErrRender = errors.New("template: render error")
)

// SyntaxError reports a template that the engine failed to compile.
type SyntaxError struct {
	Name   string
	Line   int
	Column int
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("template: %s:%d:%d: %v", e.Name, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("template: %s: %v", e.Name, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSyntax) match.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

// RenderError reports a failure while executing a compiled template.
type RenderError struct {
	Name string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("template: render %s: %v", e.Name, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRender) match.
func (e *RenderError) Is(target error) bool { return target == ErrRender }

type notFoundError struct {
	path string
	err  error
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("template: %s: %v", e.path, e.err)
}

func (e *notFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.err}
}

// NotFound wraps err so it matches both ErrNotFound and the underlying
// filesystem error.
func NotFound(path string, err error) error {
	return &notFoundError{path: path, err: err}
}
