package dataset

import "path/filepath"

// Source identifies a directory holding one data file per provider entry.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindDir SourceKind = "dir"
	SourceKindFS  SourceKind = "fs"
)

// dirSource identifies an on-disk data directory.
type dirSource struct {
	path string
}

func (s dirSource) Location() string {
	return s.path
}

func (s dirSource) Kind() SourceKind {
	return SourceKindDir
}

// SourceFromDir returns a Source pointing to a directory on disk.
func SourceFromDir(path string) Source {
	return dirSource{path: filepath.Clean(path)}
}

// fsSource references a directory within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a directory inside an fs.FS. An
// empty name selects the root of the filesystem.
func SourceFromFS(name string) Source {
	if name == "" {
		name = "."
	}
	return fsSource{name: name}
}
