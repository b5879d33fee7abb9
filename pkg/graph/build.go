package graph

import (
	"fmt"

	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// Build constructs the graph model for a scene: one node per object
// (carrying the object's flattened attributes and name), one edge per
// relation. Two passes - all nodes first, then all edges - so relation
// order never matters.
//
// Build is all-or-nothing. A duplicate object id returns
// ErrDuplicateNode wrapped with the offending id; a relation targeting a
// nonexistent object returns ErrDanglingReference wrapped with the
// source id, target id, and relation type. In both cases no partial
// graph is returned.
//
// Build never mutates the scene; a nil scene yields an empty graph.
func Build(s *scene.Scene) (*Graph, error) {
	g := New()
	if s == nil {
		return g, nil
	}

	for _, obj := range s.Objects {
		n := Node{ID: obj.ID, Name: obj.Name, Attrs: obj.Attributes.Map()}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", obj.ID, obj.Name, err)
		}
	}

	for _, obj := range s.Objects {
		for _, rel := range obj.Relations {
			e := Edge{
				Source:      obj.ID,
				Target:      rel.ObjectID,
				Type:        rel.Type,
				Description: rel.Description,
				Confidence:  rel.Confidence,
			}
			if err := g.AddEdge(e); err != nil {
				return nil, fmt.Errorf("object %d: relation %q targets %d: %w", obj.ID, rel.Type, rel.ObjectID, err)
			}
		}
	}

	return g, nil
}
