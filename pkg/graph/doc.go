// Package graph provides the in-memory graph model built from a scene
// description: one node per scene object, one edge per relation.
//
// # Overview
//
// The graph is the hub of the pipeline. A validated scene is turned into
// a [Graph] exactly once per run; layout and rendering then treat it as
// read-only. The graph is undirected for layout purposes (forces pull
// along edges regardless of authored direction), but every edge keeps
// its authored Source and Target so labels and serialized output
// preserve the relation's direction.
//
// # Building
//
// [Build] runs two passes over the scene - all nodes, then all edges -
// and is all-or-nothing: a duplicate object id or a relation pointing at
// a nonexistent object aborts the build with no partial graph escaping.
//
//	g, err := graph.Build(s)
//	if errors.Is(err, graph.ErrDanglingReference) {
//	    // a relation named an object that is not in the scene
//	}
//
// # Multi-Edges
//
// Two objects may be related more than once ("next to" and "aligned
// with"). Each relation becomes its own edge; nothing merges parallel
// edges. Layout treats each parallel edge as a separate spring, and
// renderers emit one line and one label per edge.
//
// # Querying
//
// [Graph.FindByAttribute] answers "which objects are red" style
// questions: exact-match lookup over flattened node attributes, with the
// object name addressable under the "name" key. Results follow scene
// order, and no match yields an empty slice rather than an error.
//
// # Serialization
//
// [Model] is the canonical serialization format (JSON and BSON) used by
// caching, stores, and API responses. [Graph.Export] and [FromModel]
// convert between the two representations with round-trip fidelity.
//
// # Concurrency
//
// A Graph is safe for concurrent reads after Build returns; mutation is
// not synchronized and belongs to the building phase only.
package graph
