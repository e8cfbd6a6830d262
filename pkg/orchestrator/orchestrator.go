package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-datengen/internal/dataset/loader"
	"github.com/goliatone/go-datengen/internal/logger"
	"github.com/goliatone/go-datengen/pkg/aggregate"
	"github.com/goliatone/go-datengen/pkg/dataset"
	"github.com/goliatone/go-datengen/pkg/render"
	"github.com/goliatone/go-datengen/pkg/render/template"
	"github.com/goliatone/go-datengen/pkg/render/template/gotemplate"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom data loader.
func WithLoader(loader dataset.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithTemplateLoader injects a custom template loader.
func WithTemplateLoader(loader template.Loader) Option {
	return func(o *Orchestrator) {
		o.templates = loader
	}
}

// WithLogger injects the zap logger used for step progress. Builds are
// silent by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = logger.FromZap(l)
		}
	}
}

// Orchestrator coordinates one build from data directory to output document.
// Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader        dataset.Loader
	templates     template.Loader
	logger        *logger.Logger
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of one build.
type Request struct {
	// BuildDir receives daten.html. Only the last path element is created.
	BuildDir string

	// TemplatePath points at the template rendered once per provider.
	TemplatePath string

	// DataDir holds one data file per entry. Ignored when DataSource is set.
	DataDir string

	// DataSource overrides DataDir, e.g. to read entries from an fs.FS.
	DataSource dataset.Source
}

// Result summarises a finished build.
type Result struct {
	OutputPath string
	Fragments  int
	Bytes      int
	Stats      aggregate.Stats
}

// Build runs ensure build dir → load template → load data → aggregate →
// render and write. The first failing step aborts the build.
func (o *Orchestrator) Build(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	src, err := req.source()
	if err != nil {
		return Result{}, err
	}

	log := o.logger.With("build_dir", req.BuildDir)

	if err := render.EnsureBuildDir(req.BuildDir); err != nil {
		return Result{}, fmt.Errorf("orchestrator: build directory: %w", err)
	}
	log.Debug("build directory ready")

	tpl, err := o.templates.Load(req.TemplatePath)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: load template: %w", err)
	}
	log.Debug("template loaded", "template", req.TemplatePath)

	entries, err := o.loader.Load(ctx, src)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: load data: %w", err)
	}
	log.Debug("data loaded", "source", src.Location(), "entries", len(entries))

	groups, stats, err := aggregate.AggregateEntries(entries)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: %w", err)
	}
	log.Debug("entries aggregated", "groups", stats.Groups, "skipped", stats.Skipped)

	out, err := render.Writer{BuildDir: req.BuildDir}.Write(ctx, groups, tpl)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	log.Info("document written",
		"path", out.Path,
		"fragments", out.Fragments,
		"bytes", out.Bytes,
		"entries", stats.Loaded,
		"skipped", stats.Skipped,
	)

	return Result{
		OutputPath: out.Path,
		Fragments:  out.Fragments,
		Bytes:      out.Bytes,
		Stats:      stats,
	}, nil
}

func (r Request) source() (dataset.Source, error) {
	if r.BuildDir == "" {
		return nil, errors.New("orchestrator: build directory is required")
	}
	if r.TemplatePath == "" {
		return nil, errors.New("orchestrator: template path is required")
	}
	if r.DataSource != nil {
		return r.DataSource, nil
	}
	if r.DataDir == "" {
		return nil, errors.New("orchestrator: data directory or source is required")
	}
	return dataset.SourceFromDir(r.DataDir), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(dataset.NewLoaderOptions())
	}
	if o.templates == nil {
		engine, err := gotemplate.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default template engine: %w", err)
		} else {
			o.templates = engine
		}
	}
	if o.logger == nil {
		o.logger = logger.Nop()
	}
}
