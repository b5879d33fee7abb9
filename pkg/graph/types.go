package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Model - Scene Graph Serialization
// =============================================================================

// Model is the canonical serialization format for scene graphs. Used for
// API responses, storage, caching, and cross-tool compatibility.
//
// The format is human-readable and designed for round-trip fidelity:
// build → export → re-import produces an identical graph.
type Model struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Export converts the graph to its serialization format. Nodes appear in
// insertion (scene) order and edges in build order, so exporting the
// same graph twice yields identical bytes. Attribute maps are copied;
// mutating the model never touches the graph.
func (g *Graph) Export() Model {
	m := Model{
		Nodes: make([]Node, 0, len(g.order)),
		Edges: g.Edges(),
	}
	for _, id := range g.order {
		m.Nodes = append(m.Nodes, cloneNode(g.nodes[id]))
	}
	if m.Edges == nil {
		m.Edges = []Edge{}
	}
	return m
}

// FromModel rebuilds an in-memory graph from its serialization format.
// Returns ErrDuplicateNode or ErrDanglingReference (wrapped with the
// offending ids) if the model violates graph invariants.
func FromModel(m Model) (*Graph, error) {
	g := New()
	for _, n := range m.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range m.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %d→%d: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}

// =============================================================================
// Model Serialization API
// =============================================================================

// MarshalModel serializes a model to pretty-printed JSON bytes.
func MarshalModel(m Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeModelTo(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalModel deserializes JSON bytes into a Model.
func UnmarshalModel(data []byte) (Model, error) {
	return readModelFrom(bytes.NewReader(data))
}

// WriteModelFile writes a model to a JSON file.
// The file is created with 0644 permissions.
func WriteModelFile(m Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeModelTo(m, f)
}

// ReadModelFile reads a JSON file and returns the decoded model.
func ReadModelFile(path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return Model{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readModelFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeModelTo(m Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readModelFrom(r io.Reader) (Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Model{}, fmt.Errorf("decode: %w", err)
	}
	return m, nil
}
