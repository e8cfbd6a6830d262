// Package template defines the engine-agnostic template seam the renderer
// depends on. A Loader turns a template file into a compiled Template that can
// be rendered repeatedly; the gotemplate subpackage provides the pongo2-backed
// implementation.
package template
