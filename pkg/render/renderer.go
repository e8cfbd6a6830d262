package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-datengen/pkg/aggregate"
	"github.com/goliatone/go-datengen/pkg/render/template"
)

// FragmentSeparator joins rendered fragments in the output document.
const FragmentSeparator = "\n"

// RenderGroups renders every group through tpl in first-insertion order.
func RenderGroups(ctx context.Context, groups *aggregate.Groups, tpl template.Template) ([]string, error) {
	if tpl == nil {
		return nil, fmt.Errorf("render: template is required")
	}

	all := groups.All()
	fragments := make([]string, 0, len(all))
	for _, group := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragment, err := tpl.Render(group.Context())
		if err != nil {
			return nil, fmt.Errorf("render: provider %q: %w", group.Slug, err)
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

// Join concatenates fragments with FragmentSeparator.
func Join(fragments []string) string {
	return strings.Join(fragments, FragmentSeparator)
}
