// Package datengen builds the data provider presentation: it reads one YAML
// entry per file, groups entries by provider_slug, renders every provider
// through a template, and writes the fragments to daten.html.
package datengen

import (
	"context"

	"github.com/goliatone/go-datengen/pkg/orchestrator"
	"github.com/goliatone/go-datengen/pkg/render"
)

// OutputFileName is the document written into the build directory.
const OutputFileName = render.OutputFileName

// Request aliases orchestrator.Request for callers using the root package.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Build renders the entries in dataDir through the template at templatePath
// and writes daten.html into buildDir.
func Build(ctx context.Context, buildDir, templatePath, dataDir string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Build(ctx, orchestrator.Request{
		BuildDir:     buildDir,
		TemplatePath: templatePath,
		DataDir:      dataDir,
	})
}
