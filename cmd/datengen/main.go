// Command datengen renders the data provider presentation into daten.html.
//
// Usage:
//
//	datengen [build_dir] [template_path] [data_dir]
//
// Omitted trailing arguments default to build, template.html, and data next
// to the executable. DATENGEN_* environment variables and an optional YAML
// file named by DATENGEN_CONFIG override the defaults. The file's globals
// mapping is visible to every provider fragment.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-datengen/internal/config"
	"github.com/goliatone/go-datengen/internal/logger"
	"github.com/goliatone/go-datengen/pkg/orchestrator"
	"github.com/goliatone/go-datengen/pkg/render/template/gotemplate"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(loadOptions ...config.Option) *cobra.Command {
	return &cobra.Command{
		Use:   "datengen [build_dir] [template_path] [data_dir]",
		Short: "Render data provider entries into daten.html",
		Args:  cobra.MaximumNArgs(config.MaxArgs),
		// Arguments are paths only; anything that looks like a flag is a path.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(loadOptions...)
			if err != nil {
				return err
			}
			if err := cfg.ApplyArgs(args); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	engine, err := gotemplate.New(
		gotemplate.WithAutoescape(cfg.Autoescape),
		gotemplate.WithKeepTrailingNewline(cfg.KeepTrailingNewline),
		gotemplate.WithGlobalData(cfg.Globals),
	)
	if err != nil {
		return err
	}

	gen := orchestrator.New(
		orchestrator.WithTemplateLoader(engine),
		orchestrator.WithLogger(log.SugaredLogger.Desugar()),
	)

	_, err = gen.Build(cmd.Context(), orchestrator.Request{
		BuildDir:     cfg.BuildDir,
		TemplatePath: cfg.TemplatePath,
		DataDir:      cfg.DataDir,
	})
	return err
}
