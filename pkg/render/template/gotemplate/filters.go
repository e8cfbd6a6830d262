package gotemplate

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

var (
	filtersOnce sync.Once
	filtersErr  error

	sanitizePolicyOnce sync.Once
	sanitizePolicy     *bluemonday.Policy
)

// registerFilters installs the datengen filters into pongo2's process-wide
// filter table. Names already taken are left alone.
func registerFilters() error {
	filtersOnce.Do(func() {
		filters := map[string]pongo2.FilterFunction{
			"trim":     filterTrim,
			"sanitize": filterSanitize,
		}
		for name, fn := range filters {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				filtersErr = err
				return
			}
		}
	})
	return filtersErr
}

// filterTrim strips surrounding whitespace, which YAML block scalars tend to
// leave on entry text.
func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterSanitize strips unsafe markup from entry payloads (scripts, event
// handlers, javascript: links) while keeping ordinary formatting. The result
// is marked safe so autoescaping leaves it alone.
func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || in.Len() <= 0 {
		return pongo2.AsSafeValue(""), nil
	}
	return pongo2.AsSafeValue(htmlSanitizer().Sanitize(in.String())), nil
}

func htmlSanitizer() *bluemonday.Policy {
	sanitizePolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(false)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		sanitizePolicy = policy
	})
	return sanitizePolicy
}
