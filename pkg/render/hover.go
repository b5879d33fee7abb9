package render

import (
	"fmt"
	"strings"

	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// AttributeHover formats a node's attributes for marker tooltips: the
// id first, then each attribute in canonical order (extras last,
// lexicographic), joined by <br>. A "name" attribute is excluded; the
// name lives on the marker text itself.
func AttributeHover(id int, attrs map[string]any) string {
	parts := []string{fmt.Sprintf("ID: %d", id)}
	for _, k := range scene.SortedAttributeKeys(attrs) {
		if k == "name" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, attrs[k]))
	}
	return strings.Join(parts, "<br>")
}
