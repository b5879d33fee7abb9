// Package diagram renders scene graphs as free-floating node/edge
// diagrams driven by force-directed layout positions.
package diagram

import (
	"errors"
	"fmt"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/render"
)

// ErrNilGraph indicates Render was called without a graph.
var ErrNilGraph = errors.New("nil graph")

// ErrMissingPosition indicates the position map does not cover every
// node in the graph.
var ErrMissingPosition = errors.New("node missing layout position")

// edgeLabelOffset lifts relation labels above the edge midpoint.
const edgeLabelOffset = 6.0

// Render converts a graph and its layout positions into an ordered
// primitive sequence: every edge as a line plus a relation label at the
// offset midpoint, then every node as a marker carrying its name and an
// attribute hover text. Edges draw first so markers paint on top.
//
// The sequence is deterministic: edges in graph order, nodes in
// insertion order, and repeated calls with the same inputs produce the
// identical slice.
func Render(g *graph.Graph, positions layout.PositionMap, opts ...render.Option) ([]render.Primitive, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	st := render.NewStyle(opts...)

	nodes := g.Nodes()
	for _, n := range nodes {
		if _, ok := positions[n.ID]; !ok {
			return nil, fmt.Errorf("node %d (%s): %w", n.ID, n.Name, ErrMissingPosition)
		}
	}

	prims := make([]render.Primitive, 0, 2*g.EdgeCount()+g.NodeCount())

	for _, e := range g.Edges() {
		src := toPoint(positions[e.Source])
		tgt := toPoint(positions[e.Target])
		prims = append(prims, render.Line(src, tgt, st.EdgeWidth, st.EdgeColor))

		mid := render.Point{
			X: (src.X + tgt.X) / 2,
			Y: (src.Y+tgt.Y)/2 - edgeLabelOffset,
		}
		label := render.Label(mid, e.Type, st.EdgeLabelSize, render.DefaultLabelColor, render.AnchorMiddle)
		label.Font = st.FontFamily
		prims = append(prims, label)
	}

	for _, n := range nodes {
		m := render.Marker(toPoint(positions[n.ID]), st.NodeSize, st.NodeColor, n.Name, render.AttributeHover(n.ID, n.Attrs))
		m.Font = st.FontFamily
		m.FontSize = st.FontSize
		prims = append(prims, m)
	}

	return prims, nil
}

func toPoint(p layout.Point) render.Point {
	return render.Point{X: p.X, Y: p.Y}
}
