package dataset

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-datengen/pkg/record"
)

// Entry is one decoded data file.
type Entry struct {
	// Name is the file name inside the data directory.
	Name   string
	Record record.Record
}

// Loader reads every file directly inside a data directory and decodes each
// one as a single record. Entries come back in file name order.
type Loader interface {
	Load(ctx context.Context, src Source) ([]Entry, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Records strips file names from a slice of entries.
func Records(entries []Entry) []record.Record {
	out := make([]record.Record, len(entries))
	for idx, entry := range entries {
		out[idx] = entry.Record
	}
	return out
}
