package loader

import (
	"context"
	"errors"
	"io/fs"
	"path"

	"github.com/goliatone/go-datengen/pkg/dataset"
)

func loadFromFS(ctx context.Context, files fs.FS, dir string) ([]dataset.Entry, error) {
	if files == nil {
		return nil, errors.New("dataset loader: fs is nil")
	}
	if dir == "" {
		dir = "."
	}

	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dataset.NotFound(dir, err)
		}
		return nil, err
	}

	out := make([]dataset.Entry, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		data, err := fs.ReadFile(files, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		rec, err := decode(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		out = append(out, dataset.Entry{Name: entry.Name(), Record: rec})
	}
	return out, nil
}
