package aggregate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-datengen/pkg/aggregate"
	"github.com/goliatone/go-datengen/pkg/dataset"
	"github.com/goliatone/go-datengen/pkg/record"
)

func TestAggregate_GroupsBySlugInLoadOrder(t *testing.T) {
	records := []record.Record{
		{"build": true, "provider_slug": "b", "title": "B1"},
		{"build": true, "provider_slug": "a", "title": "A1"},
		{"build": true, "provider_slug": "b", "title": "B2"},
		{"build": true, "provider_slug": "a", "title": "A2"},
		{"build": true, "provider_slug": "b", "title": "B3"},
	}

	groups, stats, err := aggregate.Aggregate(records)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if diff := cmp.Diff([]string{"b", "a"}, groups.Keys()); diff != "" {
		t.Fatalf("slug order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(aggregate.Stats{Loaded: 5, Skipped: 0, Groups: 2}, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	b, ok := groups.Get("b")
	if !ok {
		t.Fatalf("group b missing")
	}
	if diff := cmp.Diff([]string{"B1", "B2", "B3"}, titles(b.DataPoints)); diff != "" {
		t.Fatalf("data points mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_FirstRecordWinsBaseFields(t *testing.T) {
	records := []record.Record{
		{"build": true, "provider_slug": "ub", "title": "First", "city": "Leipzig"},
		{"build": true, "provider_slug": "ub", "title": "Second", "city": "Dresden", "extra": "x"},
	}

	groups, _, err := aggregate.Aggregate(records)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	group, _ := groups.Get("ub")
	want := record.Record{"build": true, "provider_slug": "ub", "title": "First", "city": "Leipzig"}
	if diff := cmp.Diff(want, group.Base); diff != "" {
		t.Fatalf("base mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_SkipsFalsyBuild(t *testing.T) {
	records := []record.Record{
		{"build": false, "provider_slug": "a", "title": "hidden"},
		{"build": 0, "provider_slug": "b", "title": "hidden"},
		{"build": nil, "provider_slug": "a", "title": "hidden"},
		{"build": "", "provider_slug": "a", "title": "hidden"},
		{"build": true, "provider_slug": "a", "title": "shown"},
	}

	groups, stats, err := aggregate.Aggregate(records)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if stats.Skipped != 4 {
		t.Fatalf("skipped = %d, want 4", stats.Skipped)
	}

	for _, group := range groups.All() {
		for _, point := range group.DataPoints {
			if !record.Truthy(point["build"]) {
				t.Fatalf("group %s contains unbuilt record %v", group.Slug, point)
			}
		}
	}
	if diff := cmp.Diff([]string{"a"}, groups.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_AllSkippedYieldsNoGroups(t *testing.T) {
	groups, stats, err := aggregate.Aggregate([]record.Record{
		{"build": false, "provider_slug": "a"},
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if groups.Len() != 0 || stats.Groups != 0 {
		t.Fatalf("expected no groups, got %d", groups.Len())
	}
}

func TestAggregate_SkippedRecordSlugIsNotValidated(t *testing.T) {
	groups, stats, err := aggregate.AggregateEntries([]dataset.Entry{
		{Name: "a.yml", Record: record.Record{"build": true, "provider_slug": "a"}},
		{Name: "b.yml", Record: record.Record{"build": false, "provider_slug": nil}},
		{Name: "c.yml", Record: record.Record{"build": "no", "provider_slug": []any{"x"}}},
		{Name: "d.yml", Record: record.Record{"build": 0, "provider_slug": map[string]any{"k": "v"}}},
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, groups.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if stats.Skipped != 3 {
		t.Fatalf("skipped = %d, want 3", stats.Skipped)
	}
}

func TestAggregate_InvalidSlugOnBuiltRecord(t *testing.T) {
	_, _, err := aggregate.AggregateEntries([]dataset.Entry{
		{Name: "b.yml", Record: record.Record{"build": true, "provider_slug": nil}},
	})
	if !errors.Is(err, record.ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
	if got := err.Error(); !strings.HasPrefix(got, "aggregate: b.yml: ") {
		t.Fatalf("error should name the file once, got %q", got)
	}
}

func TestAggregate_MissingFields(t *testing.T) {
	cases := map[string]struct {
		entry dataset.Entry
		field string
	}{
		"missing build": {
			entry: dataset.Entry{Name: "a.yml", Record: record.Record{"provider_slug": "a"}},
			field: record.FieldBuild,
		},
		"missing slug": {
			entry: dataset.Entry{Name: "b.yml", Record: record.Record{"build": true}},
			field: record.FieldProviderSlug,
		},
		"missing slug on skipped record": {
			entry: dataset.Entry{Name: "c.yml", Record: record.Record{"build": false}},
			field: record.FieldProviderSlug,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := aggregate.AggregateEntries([]dataset.Entry{tc.entry})
			if !errors.Is(err, record.ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			var missing *record.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %T", err)
			}
			if missing.Field != tc.field || missing.Source != tc.entry.Name {
				t.Fatalf("unexpected error detail: %+v", missing)
			}
		})
	}
}

func TestGroup_ContextAddsDataPoints(t *testing.T) {
	records := []record.Record{
		{"build": true, "provider_slug": "a", "title": "A1"},
		{"build": true, "provider_slug": "a", "title": "A2"},
	}
	groups, _, err := aggregate.Aggregate(records)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	group, _ := groups.Get("a")
	ctx := group.Context()

	want := map[string]any{
		"build":         true,
		"provider_slug": "a",
		"title":         "A1",
		"data_points": []any{
			map[string]any{"build": true, "provider_slug": "a", "title": "A1"},
			map[string]any{"build": true, "provider_slug": "a", "title": "A2"},
		},
	}
	if diff := cmp.Diff(want, ctx); diff != "" {
		t.Fatalf("context mismatch (-want +got):\n%s", diff)
	}
	if _, ok := group.Base[record.FieldDataPoints]; ok {
		t.Fatalf("Context must not mutate the base record")
	}
}

func titles(points []record.Record) []string {
	out := make([]string, 0, len(points))
	for _, point := range points {
		out = append(out, point["title"].(string))
	}
	return out
}
