package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-datengen/pkg/dataset"
)

func loadDir(ctx context.Context, dir string) ([]dataset.Entry, error) {
	if dir == "" {
		return nil, errors.New("dataset loader: data directory is required")
	}

	// os.ReadDir sorts by file name, which fixes the load order.
	entries, err := os.ReadDir(dir)
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

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
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
