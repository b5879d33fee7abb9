// Package layout computes 2-D positions for scene graph nodes using a
// Fruchterman-Reingold style force-directed simulation.
//
// # Overview
//
// [Compute] takes a read-only graph and returns a fresh [PositionMap]:
// every node repels every other node, every edge pulls its endpoints
// together, and a cooling schedule shrinks per-step displacement until
// the layout settles. Isolated nodes still receive positions from the
// repulsive forces alone.
//
//	positions, err := layout.Compute(g, layout.Options{Seed: 42})
//
// # Determinism
//
// Position initialization draws from a PCG generator seeded by
// [Options.Seed], and node iteration follows scene order, so the same
// graph with the same options always produces bit-identical positions.
// That property is what makes layouts cacheable and test fixtures exact.
//
// # Tuning
//
// [Options.K] scales the optimal inter-node distance k = K·sqrt(W·H/n).
// Values above 1.0 spread nodes apart; below 1.0 packs them tighter.
// Width, Height, and Padding define the frame the final positions are
// normalized into.
package layout
