package loader

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-datengen/pkg/dataset"
)

// Loader implements dataset.Loader by delegating to on-disk or fs.FS
// strategies.
type Loader struct {
	fs fs.FS
}

// Ensure the implementation satisfies the public interface.
var _ dataset.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dataset.LoaderOptions) dataset.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads every file directly inside the source directory and decodes each
// as one record.
func (l *Loader) Load(ctx context.Context, src dataset.Source) ([]dataset.Entry, error) {
	if src == nil {
		return nil, errors.New("dataset loader: source is nil")
	}

	switch src.Kind() {
	case dataset.SourceKindDir:
		return loadDir(ctx, src.Location())
	case dataset.SourceKindFS:
		return loadFromFS(ctx, l.fs, src.Location())
	default:
		return nil, errors.New("dataset loader: unsupported source kind")
	}
}
