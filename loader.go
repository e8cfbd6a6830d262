package datengen

import (
	internalLoader "github.com/goliatone/go-datengen/internal/dataset/loader"
	"github.com/goliatone/go-datengen/pkg/dataset"
	"github.com/goliatone/go-datengen/pkg/render/template/gotemplate"
)

// NewLoader constructs a data loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...dataset.LoaderOption) dataset.Loader {
	cfg := dataset.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewTemplateEngine constructs the pongo2-backed template loader.
func NewTemplateEngine(options ...gotemplate.Option) (*gotemplate.Engine, error) {
	return gotemplate.New(options...)
}
