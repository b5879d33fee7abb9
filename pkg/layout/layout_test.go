package layout

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mhagedorn/scenegraph/pkg/graph"
)

// testGraph builds a four-node graph: a connected triple plus one
// isolated node.
func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	nodes := []graph.Node{
		{ID: 1, Name: "cup"},
		{ID: 2, Name: "table"},
		{ID: 3, Name: "plate"},
		{ID: 9, Name: "window"}, // isolated
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	edges := []graph.Edge{
		{Source: 1, Target: 2, Type: "on top of"},
		{Source: 3, Target: 2, Type: "on top of"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestComputeDeterminism(t *testing.T) {
	g := testGraph(t)
	opts := Options{Seed: 42}

	first, err := Compute(g, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := Compute(g, opts)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same graph, same options, different layouts:\n%v\n%v", first, second)
	}
}

func TestComputeSeedChangesLayout(t *testing.T) {
	g := testGraph(t)

	a, err := Compute(g, Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(g, Options{Seed: 2})
	if err != nil {
		t.Fatal(err)
	}

	if reflect.DeepEqual(a, b) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestComputePositionsEveryNode(t *testing.T) {
	g := testGraph(t)

	positions, err := Compute(g, Options{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	if len(positions) != g.NodeCount() {
		t.Fatalf("positioned %d of %d nodes", len(positions), g.NodeCount())
	}
	for _, id := range g.NodeIDs() {
		if _, ok := positions[id]; !ok {
			t.Errorf("node %d (isolated ok) missing a position", id)
		}
	}
}

func TestComputePositionsWithinFrame(t *testing.T) {
	g := testGraph(t)
	opts := Options{Width: 800, Height: 600, Padding: 40, Seed: 3}

	positions, err := Compute(g, opts)
	if err != nil {
		t.Fatal(err)
	}

	for id, p := range positions {
		if p.X < opts.Padding || p.X > opts.Width-opts.Padding {
			t.Errorf("node %d x = %v outside padded frame", id, p.X)
		}
		if p.Y < opts.Padding || p.Y > opts.Height-opts.Padding {
			t.Errorf("node %d y = %v outside padded frame", id, p.Y)
		}
	}
}

func TestComputeEmptyGraph(t *testing.T) {
	positions, err := Compute(graph.New(), Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("empty graph produced %d positions", len(positions))
	}
}

func TestComputeSingleNodeCentered(t *testing.T) {
	g := graph.New()
	if err := g.AddNode(graph.Node{ID: 5, Name: "cup"}); err != nil {
		t.Fatal(err)
	}

	positions, err := Compute(g, Options{Width: 400, Height: 200})
	if err != nil {
		t.Fatal(err)
	}

	want := Point{X: 200, Y: 100}
	if positions[5] != want {
		t.Errorf("single node at %v, want frame center %v", positions[5], want)
	}
}

func TestComputeDoesNotMutateGraph(t *testing.T) {
	g := testGraph(t)
	before := g.Export()

	if _, err := Compute(g, Options{Seed: 11}); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(before, g.Export()) {
		t.Error("Compute mutated the graph")
	}
}

func TestComputeInvalidInput(t *testing.T) {
	if _, err := Compute(nil, Options{}); !errors.Is(err, ErrNilGraph) {
		t.Errorf("nil graph error = %v, want ErrNilGraph", err)
	}

	g := testGraph(t)
	tests := []struct {
		name string
		opts Options
	}{
		{"negative width", Options{Width: -10}},
		{"padding eats frame", Options{Width: 100, Height: 100, Padding: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compute(g, tt.opts); !errors.Is(err, ErrInvalidFrame) {
				t.Errorf("error = %v, want ErrInvalidFrame", err)
			}
		})
	}
}

func TestComputeParallelEdgesAccepted(t *testing.T) {
	g := graph.New()
	for _, n := range []graph.Node{{ID: 1}, {ID: 2}, {ID: 3}} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	// Two parallel relations between 1 and 2, one of them reversed.
	for _, e := range []graph.Edge{
		{Source: 1, Target: 2, Type: "next to"},
		{Source: 2, Target: 1, Type: "aligned with"},
		{Source: 2, Target: 3, Type: "on top of"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}

	positions, err := Compute(g, Options{Seed: 13})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(positions) != 3 {
		t.Errorf("positioned %d of 3 nodes", len(positions))
	}
}
