package graph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicateNode is returned by [Graph.AddNode] and [Build] when two
	// nodes share an id. Object ids must be unique within a scene.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrDanglingReference is returned by [Graph.AddEdge] and [Build] when
	// an edge endpoint does not exist in the graph, and by [Graph.Validate]
	// when a stored edge references a missing node.
	ErrDanglingReference = errors.New("edge references unknown node")
)

// Node is a graph vertex derived from one scene object. Attrs is the
// object's flattened attribute set; Name is kept separate but remains
// addressable through [Graph.FindByAttribute] under the "name" key.
type Node struct {
	ID    int            `json:"id" bson:"id"`
	Name  string         `json:"name,omitempty" bson:"name,omitempty"`
	Attrs map[string]any `json:"attrs,omitempty" bson:"attrs,omitempty"`
}

// Edge records one relation between two objects. The graph is undirected
// for layout purposes; Source and Target preserve the authored direction
// for labeling and serialization. Parallel edges between the same pair
// are legal and kept distinct.
type Edge struct {
	Source      int     `json:"source" bson:"source"`
	Target      int     `json:"target" bson:"target"`
	Type        string  `json:"relation_type,omitempty" bson:"relation_type,omitempty"`
	Description string  `json:"relation_description,omitempty" bson:"relation_description,omitempty"`
	Confidence  float64 `json:"relation_confidence,omitempty" bson:"relation_confidence,omitempty"`
}

// Graph is an undirected multigraph over scene objects. Node iteration
// follows insertion (scene) order so every derived artifact - layouts,
// primitive sequences, serialized models - is reproducible.
//
// The zero value is not usable - use New or Build.
type Graph struct {
	nodes     map[int]*Node
	order     []int  // node ids in insertion order
	edges     []Edge // insertion order, parallel edges kept
	neighbors map[int][]int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:     make(map[int]*Node),
		neighbors: make(map[int][]int),
	}
}

// AddNode adds a node to the graph. Returns ErrDuplicateNode if a node
// with the same id already exists. A nil Attrs map is initialized to an
// empty map.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNode
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	node := &n
	g.nodes[node.ID] = node
	g.order = append(g.order, node.ID)
	return nil
}

// AddEdge adds an edge between two existing nodes. Returns
// ErrDanglingReference if either endpoint is missing. Parallel edges
// between the same pair accumulate; nothing deduplicates them.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrDanglingReference
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrDanglingReference
	}
	g.edges = append(g.edges, e)
	g.neighbors[e.Source] = append(g.neighbors[e.Source], e.Target)
	if e.Target != e.Source {
		g.neighbors[e.Target] = append(g.neighbors[e.Target], e.Source)
	}
	return nil
}

// Node returns the node with the given id and true, or nil and false if
// not found.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion (scene) order. The returned slice
// contains pointers to the actual node structs.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node ids in insertion (scene) order.
func (g *Graph) NodeIDs() []int { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting parallel edges
// individually.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the ids adjacent to a node, regardless of authored
// edge direction. Parallel edges contribute one entry each. The returned
// slice is a read-only view - do not modify it.
func (g *Graph) Neighbors(id int) []int { return g.neighbors[id] }

// Degree returns the number of edges incident to a node, counting
// parallel edges individually. Returns 0 for unknown ids.
func (g *Graph) Degree(id int) int { return len(g.neighbors[id]) }

// Validate checks graph integrity: every edge endpoint must exist as a
// node. Returns ErrDanglingReference wrapped with the offending edge,
// nil if the graph is consistent. Build output always validates; this
// guards graphs rebuilt from serialized models or external input.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.Source]; !ok {
			return fmt.Errorf("edge %d→%d: source: %w", e.Source, e.Target, ErrDanglingReference)
		}
		if _, ok := g.nodes[e.Target]; !ok {
			return fmt.Errorf("edge %d→%d: target: %w", e.Source, e.Target, ErrDanglingReference)
		}
	}
	return nil
}

// cloneNode copies a node with its attribute map, for export paths that
// must not alias graph internals.
func cloneNode(n *Node) Node {
	return Node{ID: n.ID, Name: n.Name, Attrs: maps.Clone(n.Attrs)}
}
