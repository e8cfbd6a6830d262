package aggregate

import (
	"fmt"

	"github.com/goliatone/go-datengen/pkg/dataset"
	"github.com/goliatone/go-datengen/pkg/record"
)

// Group is the merged view of every qualifying entry sharing one slug.
type Group struct {
	Slug string
	// Base holds the fields of the first entry seen for the slug.
	Base record.Record
	// DataPoints lists every entry mapped to the slug in load order.
	DataPoints []record.Record
}

// Context returns the template context for the group: the base fields plus
// data_points. A data_points key on the base entry is shadowed.
func (g *Group) Context() map[string]any {
	ctx := make(map[string]any, len(g.Base)+1)
	for key, value := range g.Base {
		ctx[key] = value
	}
	points := make([]any, len(g.DataPoints))
	for idx, point := range g.DataPoints {
		points[idx] = map[string]any(point)
	}
	ctx[record.FieldDataPoints] = points
	return ctx
}

// Groups maps provider slugs to groups while keeping first-insertion order.
type Groups struct {
	order []string
	index map[string]*Group
}

func newGroups() *Groups {
	return &Groups{index: make(map[string]*Group)}
}

// Len reports the number of groups.
func (g *Groups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// Keys returns the slugs in first-insertion order.
func (g *Groups) Keys() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.order...)
}

// Get returns the group for slug.
func (g *Groups) Get(slug string) (*Group, bool) {
	if g == nil {
		return nil, false
	}
	group, ok := g.index[slug]
	return group, ok
}

// All returns the groups in first-insertion order.
func (g *Groups) All() []*Group {
	if g == nil {
		return nil
	}
	out := make([]*Group, 0, len(g.order))
	for _, slug := range g.order {
		out = append(out, g.index[slug])
	}
	return out
}

func (g *Groups) add(slug string, rec record.Record) {
	if group, ok := g.index[slug]; ok {
		group.DataPoints = append(group.DataPoints, rec)
		return
	}
	g.index[slug] = &Group{
		Slug:       slug,
		Base:       record.Clone(rec),
		DataPoints: []record.Record{rec},
	}
	g.order = append(g.order, slug)
}

// Stats summarises one aggregation run.
type Stats struct {
	Loaded  int
	Skipped int
	Groups  int
}

// Aggregate groups records by provider slug. Every record must carry build
// and provider_slug; a missing field aborts with a *record.MissingFieldError.
// The slug value is only validated on records that are built.
func Aggregate(records []record.Record) (*Groups, Stats, error) {
	entries := make([]dataset.Entry, len(records))
	for idx, rec := range records {
		entries[idx] = dataset.Entry{Record: rec}
	}
	return AggregateEntries(entries)
}

// AggregateEntries is Aggregate for loader output; file names end up in
// error messages.
func AggregateEntries(entries []dataset.Entry) (*Groups, Stats, error) {
	groups := newGroups()
	stats := Stats{Loaded: len(entries)}

	for idx, entry := range entries {
		build, err := record.Build(entry.Record)
		if err != nil {
			return nil, Stats{}, withSource(err, entry, idx)
		}
		if !build {
			// Skipped entries only need the key; their slug is never used.
			if err := record.Require(entry.Record, record.FieldProviderSlug); err != nil {
				return nil, Stats{}, withSource(err, entry, idx)
			}
			stats.Skipped++
			continue
		}
		slug, err := record.ProviderSlug(entry.Record)
		if err != nil {
			return nil, Stats{}, withSource(err, entry, idx)
		}
		groups.add(slug, entry.Record)
	}

	stats.Groups = groups.Len()
	return groups, stats, nil
}

func withSource(err error, entry dataset.Entry, idx int) error {
	source := entry.Name
	if source == "" {
		source = fmt.Sprintf("record #%d", idx)
	}
	if missing, ok := err.(*record.MissingFieldError); ok {
		missing.Source = source
		return missing
	}
	return fmt.Errorf("aggregate: %s: %w", source, err)
}
