// Package render turns aggregated provider groups into the output document:
// one fragment per group, joined by newlines, written to daten.html inside
// the build directory.
package render
