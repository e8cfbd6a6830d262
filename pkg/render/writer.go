package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-datengen/pkg/aggregate"
	"github.com/goliatone/go-datengen/pkg/render/template"
)

// OutputFileName is the document written into the build directory.
const OutputFileName = "daten.html"

// EnsureBuildDir creates dir when it is not already a directory. Only the last
// path element is created; missing parents are an error.
func EnsureBuildDir(dir string) error {
	if dir == "" {
		return errors.New("render: build directory is required")
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("render: stat build directory: %w", err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return fmt.Errorf("render: create build directory: %w", err)
	}
	return nil
}

// WriteDocument writes content to OutputFileName inside buildDir, replacing
// any previous document, and returns the written path.
func WriteDocument(buildDir, content string) (string, error) {
	path := filepath.Join(buildDir, OutputFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("render: write %s: %w", OutputFileName, err)
	}
	return path, nil
}

// Output describes one written document.
type Output struct {
	Path      string
	Fragments int
	Bytes     int
}

// Writer renders aggregated groups and writes the joined document once all
// fragments are in memory, so a failed render never leaves a partial file.
type Writer struct {
	BuildDir string
}

// Write renders groups through tpl and writes the document.
func (w Writer) Write(ctx context.Context, groups *aggregate.Groups, tpl template.Template) (Output, error) {
	fragments, err := RenderGroups(ctx, groups, tpl)
	if err != nil {
		return Output{}, err
	}

	content := Join(fragments)
	path, err := WriteDocument(w.BuildDir, content)
	if err != nil {
		return Output{}, err
	}
	return Output{Path: path, Fragments: len(fragments), Bytes: len(content)}, nil
}
