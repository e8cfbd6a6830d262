package render_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datengen/pkg/aggregate"
	"github.com/goliatone/go-datengen/pkg/record"
	"github.com/goliatone/go-datengen/pkg/render"
	"github.com/goliatone/go-datengen/pkg/render/template"
	"github.com/goliatone/go-datengen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-datengen/pkg/testsupport"
)

func TestRenderGroups_OneFragmentPerSlug(t *testing.T) {
	groups := mustAggregate(t,
		record.Record{"build": true, "provider_slug": "a", "title": "A"},
		record.Record{"build": true, "provider_slug": "b", "title": "B"},
		record.Record{"build": true, "provider_slug": "a", "title": "A2"},
	)

	fragments, err := render.RenderGroups(context.Background(), groups, mustCompile(t,
		"<{{ title }}:{% for dp in data_points %}{{ dp.title }};{% endfor %}>"))
	if err != nil {
		t.Fatalf("render groups: %v", err)
	}

	want := []string{"<A:A;A2;>", "<B:B;>"}
	if diff := cmp.Diff(want, fragments); diff != "" {
		t.Fatalf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderGroups_WrapsTemplateErrors(t *testing.T) {
	groups := mustAggregate(t, record.Record{"build": true, "provider_slug": "a"})

	_, err := render.RenderGroups(context.Background(), groups, failingTemplate{})
	if !errors.Is(err, template.ErrRender) {
		t.Fatalf("expected ErrRender, got %v", err)
	}
	if !strings.Contains(err.Error(), `"a"`) {
		t.Fatalf("expected slug in error, got %v", err)
	}
}

func TestJoin(t *testing.T) {
	if got := render.Join([]string{"a", "b", "c"}); got != "a\nb\nc" {
		t.Fatalf("join = %q", got)
	}
	if got := render.Join(nil); got != "" {
		t.Fatalf("join nil = %q", got)
	}
}

func TestEnsureBuildDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "build")

	if err := render.EnsureBuildDir(dir); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("build dir not created: %v", err)
	}

	testsupport.WriteFile(t, filepath.Join(dir, "keep.txt"), "keep")
	if err := render.EnsureBuildDir(dir); err != nil {
		t.Fatalf("ensure existing: %v", err)
	}
	if got := testsupport.MustReadFile(t, filepath.Join(dir, "keep.txt")); got != "keep" {
		t.Fatalf("existing content changed: %q", got)
	}
}

func TestEnsureBuildDir_DoesNotCreateParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing", "build")

	err := render.EnsureBuildDir(dir)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestEnsureBuildDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build")
	testsupport.WriteFile(t, path, "not a dir")

	if err := render.EnsureBuildDir(path); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist, got %v", err)
	}
}

func TestWriter_OverwritesDocument(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, render.OutputFileName), "stale content that is longer")
	testsupport.WriteFile(t, filepath.Join(dir, "other.html"), "untouched")

	groups := mustAggregate(t,
		record.Record{"build": true, "provider_slug": "a", "title": "A"},
		record.Record{"build": true, "provider_slug": "b", "title": "B"},
	)

	out, err := render.Writer{BuildDir: dir}.Write(context.Background(), groups, mustCompile(t, "{{ title }}"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	want := render.Output{Path: filepath.Join(dir, render.OutputFileName), Fragments: 2, Bytes: 3}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if got := testsupport.MustReadFile(t, out.Path); got != "A\nB" {
		t.Fatalf("document = %q", got)
	}
	if got := testsupport.MustReadFile(t, filepath.Join(dir, "other.html")); got != "untouched" {
		t.Fatalf("unrelated file changed: %q", got)
	}
}

func TestWriter_RenderFailureLeavesNoDocument(t *testing.T) {
	dir := t.TempDir()
	groups := mustAggregate(t, record.Record{"build": true, "provider_slug": "a"})

	if _, err := (render.Writer{BuildDir: dir}).Write(context.Background(), groups, failingTemplate{}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := os.Stat(filepath.Join(dir, render.OutputFileName)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected no document, stat err = %v", err)
	}
}

func TestWriter_EmptyGroupsWritesEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	groups := mustAggregate(t, record.Record{"build": false, "provider_slug": "a"})

	out, err := render.Writer{BuildDir: dir}.Write(context.Background(), groups, mustCompile(t, "{{ title }}"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.Fragments != 0 {
		t.Fatalf("fragments = %d", out.Fragments)
	}
	if got := testsupport.MustReadFile(t, out.Path); got != "" {
		t.Fatalf("document = %q, want empty", got)
	}
}

type failingTemplate struct{}

func (failingTemplate) Render(map[string]any, ...io.Writer) (string, error) {
	return "", &template.RenderError{Name: "failing", Err: errors.New("boom")}
}

func mustAggregate(t *testing.T, records ...record.Record) *aggregate.Groups {
	t.Helper()

	groups, _, err := aggregate.Aggregate(records)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	return groups
}

func mustCompile(t *testing.T, content string) template.Template {
	t.Helper()

	engine, err := gotemplate.New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	tpl, err := engine.CompileString("test", content)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return tpl
}
