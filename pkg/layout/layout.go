package layout

import (
	"errors"

	"github.com/mhagedorn/scenegraph/pkg/graph"
)

// ErrNilGraph is returned by [Compute] when passed a nil graph.
var ErrNilGraph = errors.New("layout: graph is nil")

// ErrInvalidFrame is returned by [Compute] when the frame dimensions are
// not positive or the padding leaves no usable area.
var ErrInvalidFrame = errors.New("layout: invalid frame dimensions")

// Default layout parameters. Width and height define an abstract frame;
// renderers rescale positions into their own surfaces.
const (
	DefaultWidth      = 1000.0
	DefaultHeight     = 1000.0
	DefaultIterations = 50
	DefaultPadding    = 50.0
	DefaultK          = 1.0
)

// Point is a 2-D layout coordinate.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// PositionMap assigns a coordinate to every node id. Each Compute call
// produces a fresh map; positions are derived artifacts and never part
// of graph identity.
type PositionMap map[int]Point

// Options configure one layout computation. The zero value selects the
// defaults with seed 0; layouts are deterministic per (graph, options).
type Options struct {
	Width      float64 // frame width (default 1000)
	Height     float64 // frame height (default 1000)
	Iterations int     // simulation steps (default 50)
	Padding    float64 // frame margin positions are normalized into (default 50)
	K          float64 // spring constant scaling optimal node distance (default 1.0)
	Seed       uint64  // position initialization seed
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.K == 0 {
		o.K = DefaultK
	}
	return o
}

// Compute runs the force-directed simulation and returns a position for
// every node in the graph. The graph is never mutated. An empty graph
// yields an empty map; a single node lands at the frame center.
func Compute(g *graph.Graph, opts Options) (PositionMap, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := opts.withDefaults()
	if o.Width <= 0 || o.Height <= 0 || o.Iterations < 0 {
		return nil, ErrInvalidFrame
	}
	if 2*o.Padding >= o.Width || 2*o.Padding >= o.Height {
		return nil, ErrInvalidFrame
	}
	return forceDirected(g, o), nil
}
