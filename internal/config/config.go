// Package config resolves the build paths and ambient settings for a run.
// Values layer from compiled defaults (relative to the executable), an
// optional YAML config file, DATENGEN_* environment variables, and finally
// positional command line arguments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DATENGEN"
	// EnvConfigFile names an optional YAML config file.
	EnvConfigFile = EnvPrefix + "_CONFIG"

	DefaultBuildDirName     = "build"
	DefaultTemplateFileName = "template.html"
	DefaultDataDirName      = "data"
	DefaultLogLevel         = "warn"
	DefaultLogMode          = "console"

	// MaxArgs is the number of positional path overrides accepted.
	MaxArgs = 3
)

// Config carries everything a build needs. It is built once at startup and
// passed down.
type Config struct {
	BuildDir     string `mapstructure:"build_dir"`
	TemplatePath string `mapstructure:"template_path"`
	DataDir      string `mapstructure:"data_dir"`

	LogLevel string `mapstructure:"log_level"`
	LogMode  string `mapstructure:"log_mode"`

	Autoescape          bool `mapstructure:"autoescape"`
	KeepTrailingNewline bool `mapstructure:"keep_trailing_newline"`

	// Globals are template values shared by every provider fragment, e.g. a
	// site title or base URL. Read from the config file only; keys are
	// lowercased.
	Globals map[string]any `mapstructure:"globals"`
}

// Defaults returns the compiled-in configuration rooted at baseDir.
func Defaults(baseDir string) *Config {
	return &Config{
		BuildDir:     filepath.Join(baseDir, DefaultBuildDirName),
		TemplatePath: filepath.Join(baseDir, DefaultTemplateFileName),
		DataDir:      filepath.Join(baseDir, DefaultDataDirName),
		LogLevel:     DefaultLogLevel,
		LogMode:      DefaultLogMode,
	}
}

// Option customises Load.
type Option func(*loadOptions)

type loadOptions struct {
	baseDir    string
	configFile string
}

// WithBaseDir overrides the directory defaults are resolved against. The
// executable's directory is used otherwise.
func WithBaseDir(dir string) Option {
	return func(o *loadOptions) {
		o.baseDir = dir
	}
}

// WithConfigFile reads overrides from a YAML file. DATENGEN_CONFIG is used
// when no file is given.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// Load builds a Config from defaults, the optional config file, and the
// environment.
func Load(options ...Option) (*Config, error) {
	opts := loadOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	if opts.baseDir == "" {
		dir, err := ExecutableDir()
		if err != nil {
			return nil, err
		}
		opts.baseDir = dir
	}
	if opts.configFile == "" {
		opts.configFile = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}

	defaults := Defaults(opts.baseDir)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("build_dir", defaults.BuildDir)
	v.SetDefault("template_path", defaults.TemplatePath)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_mode", defaults.LogMode)
	v.SetDefault("autoescape", defaults.Autoescape)
	v.SetDefault("keep_trailing_newline", defaults.KeepTrailingNewline)

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyArgs overrides build dir, template path, and data dir from positional
// arguments, left to right. Omitted trailing arguments keep their values.
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > MaxArgs {
		return fmt.Errorf("config: expected at most %d arguments (build_dir template_path data_dir), got %d", MaxArgs, len(args))
	}
	targets := []*string{&c.BuildDir, &c.TemplatePath, &c.DataDir}
	for idx, arg := range args {
		*targets[idx] = arg
	}
	return nil
}

// Validate checks that the required paths are set.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.BuildDir) == "":
		return fmt.Errorf("config: build_dir is empty")
	case strings.TrimSpace(c.TemplatePath) == "":
		return fmt.Errorf("config: template_path is empty")
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("config: data_dir is empty")
	}
	return nil
}

// ExecutableDir returns the directory holding the running binary with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config: locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
