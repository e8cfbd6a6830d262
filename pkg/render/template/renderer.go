package template

import (
	"io"
)

// Template is a compiled template ready for repeated rendering. Every top-level
// key of data is available as a named placeholder.
type Template interface {
	Render(data map[string]any, out ...io.Writer) (string, error)
}

// Loader reads a template file and compiles it.
type Loader interface {
	Load(path string) (Template, error)
}
