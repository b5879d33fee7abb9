package layout

import (
	"math"
	"math/rand/v2"

	"github.com/mhagedorn/scenegraph/pkg/graph"
)

// forceDirected implements the Fruchterman-Reingold simulation. All
// iteration happens over scene-ordered slices, never map ranges, so the
// result is bit-identical for a fixed (graph, options) pair.
func forceDirected(g *graph.Graph, o Options) PositionMap {
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return PositionMap{}
	}

	// Single node - center it.
	if len(ids) == 1 {
		return PositionMap{ids[0]: {X: o.Width / 2, Y: o.Height / 2}}
	}

	rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0xdeadbeef))

	// Initialize random positions inside the padded frame.
	positions := make(PositionMap, len(ids))
	for _, id := range ids {
		positions[id] = Point{
			X: rng.Float64()*(o.Width-2*o.Padding) + o.Padding,
			Y: rng.Float64()*(o.Height-2*o.Padding) + o.Padding,
		}
	}

	edges := g.Edges()

	// Optimal distance between nodes, scaled by the caller's spring knob.
	k := o.K * math.Sqrt((o.Width*o.Height)/float64(len(ids)))
	temperature := o.Width / 10.0

	for iter := 0; iter < o.Iterations; iter++ {
		forces := make(map[int]Point, len(ids))
		for _, id := range ids {
			forces[id] = Point{}
		}

		// Repulsion between all pairs.
		for i, id1 := range ids {
			for j := i + 1; j < len(ids); j++ {
				id2 := ids[j]
				dx := positions[id1].X - positions[id2].X
				dy := positions[id1].Y - positions[id2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[id1] = Point{X: forces[id1].X + fx, Y: forces[id1].Y + fy}
				forces[id2] = Point{X: forces[id2].X - fx, Y: forces[id2].Y - fy}
			}
		}

		// Attraction along every edge. Parallel edges pull once each, so
		// heavily related pairs sit closer together.
		for _, e := range edges {
			if e.Source == e.Target {
				continue
			}
			dx := positions[e.Source].X - positions[e.Target].X
			dy := positions[e.Source].Y - positions[e.Target].Y
			dist := math.Sqrt(dx*dx + dy*dy)

			if dist < 0.01 {
				continue
			}

			force := (dist * dist) / k
			fx := (dx / dist) * force
			fy := (dy / dist) * force

			forces[e.Source] = Point{X: forces[e.Source].X - fx, Y: forces[e.Source].Y - fy}
			forces[e.Target] = Point{X: forces[e.Target].X + fx, Y: forces[e.Target].Y + fy}
		}

		// Apply forces, capped by temperature and shrunk by the cooling
		// schedule, then clip to the frame.
		cool := 1.0 - float64(iter)/float64(o.Iterations)
		for _, id := range ids {
			fx := forces[id].X
			fy := forces[id].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool

				positions[id] = Point{
					X: clamp(positions[id].X+dx, 0, o.Width),
					Y: clamp(positions[id].Y+dy, 0, o.Height),
				}
			}
		}

		temperature *= 0.95
	}

	return normalize(positions, ids, o.Width, o.Height, o.Padding)
}

// normalize rescales positions to span the padded frame exactly. A
// degenerate axis (all nodes at the same coordinate) collapses onto the
// padding origin rather than dividing by zero.
func normalize(positions PositionMap, ids []int, width, height, padding float64) PositionMap {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, id := range ids {
		pos := positions[id]
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(PositionMap, len(positions))
	for _, id := range ids {
		pos := positions[id]
		normalized[id] = Point{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}
	return normalized
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
