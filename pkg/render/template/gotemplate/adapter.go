package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-datengen/pkg/record"
	"github.com/goliatone/go-datengen/pkg/render/template"
)

// pongo2 refuses to execute with context keys outside this set.
var identifierKey = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// pongo2 keeps autoescaping as a package global, so executions that depend on
// it are serialised.
var executeMu sync.Mutex

// Option configures the pongo2 adapter before construction.
type Option func(*Engine)

// WithGlobalData seeds values visible to every template compiled by the
// engine. Per-provider data shadows globals with the same key.
func WithGlobalData(data map[string]any) Option {
	return func(e *Engine) {
		for key, value := range data {
			key = strings.TrimSpace(key)
			if !identifierKey.MatchString(key) {
				continue
			}
			e.globals[key] = record.Normalize(value)
		}
	}
}

// WithAutoescape toggles HTML escaping of placeholder output. Off by default.
func WithAutoescape(enabled bool) Option {
	return func(e *Engine) {
		e.autoescape = enabled
	}
}

// WithKeepTrailingNewline keeps the final newline of template sources. By
// default a single trailing newline is dropped when compiling.
func WithKeepTrailingNewline(keep bool) Option {
	return func(e *Engine) {
		e.keepTrailingNewline = keep
	}
}

// Engine loads and compiles pongo2 (Django/Jinja syntax) templates.
type Engine struct {
	globals             pongo2.Context
	autoescape          bool
	keepTrailingNewline bool
}

var _ template.Loader = (*Engine)(nil)

// New constructs an Engine and registers the datengen filters.
func New(options ...Option) (*Engine, error) {
	engine := &Engine{globals: pongo2.Context{}}
	for _, opt := range options {
		if opt != nil {
			opt(engine)
		}
	}
	if err := registerFilters(); err != nil {
		return nil, fmt.Errorf("gotemplate: register filters: %w", err)
	}
	return engine, nil
}

// Load reads the template file at path and compiles it. Includes and extends
// resolve relative to the template's directory.
func (e *Engine) Load(path string) (template.Template, error) {
	if e == nil {
		return nil, errors.New("gotemplate: engine is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("gotemplate: template path is required")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, template.NotFound(path, err)
		}
		return nil, fmt.Errorf("gotemplate: read template %q: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: resolve template %q: %w", path, err)
	}
	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("gotemplate: template directory: %w", err)
	}

	return e.compile(filepath.Base(path), content, loader)
}

// CompileString compiles template text that does not live on disk. Includes
// resolve against the working directory.
func (e *Engine) CompileString(name, content string) (template.Template, error) {
	if e == nil {
		return nil, errors.New("gotemplate: engine is nil")
	}
	if name == "" {
		name = "<string>"
	}
	return e.compile(name, []byte(content), pongo2.MustNewLocalFileSystemLoader(""))
}

func (e *Engine) compile(name string, content []byte, loader pongo2.TemplateLoader) (template.Template, error) {
	if !e.keepTrailingNewline {
		content = trimTrailingNewline(content)
	}

	set := pongo2.NewSet("datengen:"+name, loader)
	set.Globals.Update(e.globals)

	tpl, err := set.FromBytes(content)
	if err != nil {
		return nil, syntaxError(name, err)
	}
	return &compiledTemplate{name: name, tpl: tpl, autoescape: e.autoescape}, nil
}

type compiledTemplate struct {
	name       string
	tpl        *pongo2.Template
	autoescape bool
}

// Render executes the template against data, copying the result to every
// writer in out. Placeholders without a matching key render as empty strings.
func (t *compiledTemplate) Render(data map[string]any, out ...io.Writer) (string, error) {
	viewContext := make(pongo2.Context, len(data))
	for key, value := range data {
		// Keys that are not identifiers cannot be addressed from a template.
		if identifierKey.MatchString(key) {
			viewContext[key] = record.Normalize(value)
		}
	}

	var buf bytes.Buffer

	executeMu.Lock()
	pongo2.SetAutoescape(t.autoescape)
	err := t.tpl.ExecuteWriter(viewContext, &buf)
	executeMu.Unlock()

	if err != nil {
		return "", &template.RenderError{Name: t.name, Err: err}
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("gotemplate: write %s: %w", t.name, err)
		}
	}
	return rendered, nil
}

func syntaxError(name string, err error) error {
	out := &template.SyntaxError{Name: name, Err: err}
	var perr *pongo2.Error
	if errors.As(err, &perr) {
		out.Line = perr.Line
		out.Column = perr.Column
	}
	return out
}

// trimTrailingNewline drops one final "\n" or "\r\n".
func trimTrailingNewline(content []byte) []byte {
	if bytes.HasSuffix(content, []byte("\r\n")) {
		return content[:len(content)-2]
	}
	return bytes.TrimSuffix(content, []byte("\n"))
}
