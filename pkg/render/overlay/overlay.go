// Package overlay renders scene graphs in image pixel space: a
// bounding-box rectangle and name label for every object, plus the
// graph's edges and node markers rescaled from layout coordinates onto
// the source image.
//
// The renderer performs no I/O. Callers resolve the backing image
// through [imageio.Accessor] and pass its pixel dimensions here; a
// missing image surfaces at that boundary, never inside Render.
//
// [imageio.Accessor]: github.com/mhagedorn/scenegraph/pkg/imageio
package overlay

import (
	"errors"
	"fmt"
	"math"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/render"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// Errors reported by Render.
var (
	ErrNilScene          = errors.New("nil scene")
	ErrNilGraph          = errors.New("nil graph")
	ErrInvalidDimensions = errors.New("image dimensions must be positive")
	ErrMissingPosition   = errors.New("node missing layout position")
)

// labelGap lifts object name labels above the bounding-box top edge.
const labelGap = 4.0

// Render converts a scene and its graph into image-space primitives:
// per object a bounding-box rectangle (normalized coordinates scaled
// per axis by the image dimensions) and a name label just above its
// top edge, then per edge a line, then per node a marker carrying the
// node name and attribute hover text.
//
// Layout positions are rescaled into pixel space by fitting the
// position map's bounding box to the image rectangle with a linear
// per-axis scale; a degenerate axis collapses to the image midline.
//
// The sequence is deterministic: objects in scene order, edges in
// graph order, nodes in insertion order.
func Render(s *scene.Scene, g *graph.Graph, positions layout.PositionMap, width, height float64, opts ...render.Option) ([]render.Primitive, error) {
	if s == nil {
		return nil, ErrNilScene
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidDimensions, width, height)
	}
	st := render.NewStyle(opts...)

	nodes := g.Nodes()
	for _, n := range nodes {
		if _, ok := positions[n.ID]; !ok {
			return nil, fmt.Errorf("node %d (%s): %w", n.ID, n.Name, ErrMissingPosition)
		}
	}

	prims := make([]render.Primitive, 0, 2*len(s.Objects)+g.EdgeCount()+g.NodeCount())

	for _, obj := range s.Objects {
		bb := obj.BoundingBox
		from := render.Point{X: bb.XMin * width, Y: bb.YMin * height}
		to := render.Point{X: bb.XMax * width, Y: bb.YMax * height}
		prims = append(prims, render.Rect(from, to, render.DefaultRectWidth, st.NodeColor))

		label := render.Label(
			render.Point{X: from.X, Y: from.Y - labelGap},
			obj.Name, st.FontSize, render.DefaultLabelColor, render.AnchorStart,
		)
		label.Font = st.FontFamily
		prims = append(prims, label)
	}

	toPixel := fitToImage(g.NodeIDs(), positions, width, height)

	for _, e := range g.Edges() {
		prims = append(prims, render.Line(
			toPixel(positions[e.Source]), toPixel(positions[e.Target]),
			st.EdgeWidth, st.EdgeColor,
		))
	}

	for _, n := range nodes {
		m := render.Marker(toPixel(positions[n.ID]), st.NodeSize, st.NodeColor, n.Name, render.AttributeHover(n.ID, n.Attrs))
		m.Font = st.FontFamily
		m.FontSize = st.FontSize
		prims = append(prims, m)
	}

	return prims, nil
}

// fitToImage maps layout coordinates onto the image rectangle with a
// linear per-axis scale fitted to the positions' bounding box.
func fitToImage(ids []int, positions layout.PositionMap, width, height float64) func(layout.Point) render.Point {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, id := range ids {
		p := positions[id]
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY

	return func(p layout.Point) render.Point {
		out := render.Point{X: width / 2, Y: height / 2}
		if rangeX > 1e-9 {
			out.X = (p.X - minX) / rangeX * width
		}
		if rangeY > 1e-9 {
			out.Y = (p.Y - minY) / rangeY * height
		}
		return out
	}
}
