package diagram

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/render"
)

func cupTableGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	if err := g.AddNode(graph.Node{ID: 1, Name: "cup", Attrs: map[string]any{"color": "red", "mass": 0.3}}); err != nil {
		t.Fatalf("AddNode(cup) error: %v", err)
	}
	if err := g.AddNode(graph.Node{ID: 2, Name: "table", Attrs: map[string]any{"color": "brown", "material": "wood"}}); err != nil {
		t.Fatalf("AddNode(table) error: %v", err)
	}
	if err := g.AddEdge(graph.Edge{Source: 1, Target: 2, Type: "on top of", Confidence: 0.95}); err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}
	return g
}

func cupTablePositions() layout.PositionMap {
	return layout.PositionMap{
		1: {X: 100, Y: 100},
		2: {X: 300, Y: 300},
	}
}

func TestRenderCupOnTable(t *testing.T) {
	g := cupTableGraph(t)

	prims, err := Render(g, cupTablePositions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// One edge line, one edge label, then the two node markers.
	kinds := make([]string, len(prims))
	for i, p := range prims {
		kinds[i] = p.Kind
	}
	want := []string{render.KindLine, render.KindLabel, render.KindMarker, render.KindMarker}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("primitive kinds = %v, want %v", kinds, want)
	}

	line := prims[0]
	if line.From.X != 100 || line.From.Y != 100 || line.To.X != 300 || line.To.Y != 300 {
		t.Errorf("line = %+v -> %+v, want (100,100) -> (300,300)", line.From, line.To)
	}
	if line.Width != render.DefaultEdgeWidth || line.Color != render.DefaultEdgeColor {
		t.Errorf("line style = (%v, %q), want (%v, %q)",
			line.Width, line.Color, render.DefaultEdgeWidth, render.DefaultEdgeColor)
	}

	label := prims[1]
	if label.Text != "on top of" {
		t.Errorf("label text = %q, want %q", label.Text, "on top of")
	}
	if label.At.X != 200 || label.At.Y != 200-edgeLabelOffset {
		t.Errorf("label at = %+v, want (200, %v)", label.At, 200-edgeLabelOffset)
	}
	if label.FontSize != render.DefaultEdgeLabelSize {
		t.Errorf("label font size = %v, want %v", label.FontSize, render.DefaultEdgeLabelSize)
	}

	cup, table := prims[2], prims[3]
	if cup.Text != "cup" || table.Text != "table" {
		t.Errorf("marker texts = %q, %q, want cup, table", cup.Text, table.Text)
	}
	if cup.At.X != 100 || cup.At.Y != 100 {
		t.Errorf("cup marker at = %+v, want (100,100)", cup.At)
	}
	if cup.Size != render.DefaultNodeSize || cup.Color != render.DefaultNodeColor {
		t.Errorf("marker style = (%v, %q), want (%v, %q)",
			cup.Size, cup.Color, render.DefaultNodeSize, render.DefaultNodeColor)
	}
	if cup.Font != render.DefaultFontFamily || cup.FontSize != render.DefaultFontSize {
		t.Errorf("marker font = (%q, %v), want (%q, %v)",
			cup.Font, cup.FontSize, render.DefaultFontFamily, render.DefaultFontSize)
	}
}

func TestRenderHoverText(t *testing.T) {
	g := cupTableGraph(t)

	prims, err := Render(g, cupTablePositions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	cup := prims[2]
	if cup.Hover != "ID: 1<br>color: red<br>mass: 0.3" {
		t.Errorf("cup hover = %q, want %q", cup.Hover, "ID: 1<br>color: red<br>mass: 0.3")
	}
	table := prims[3]
	if table.Hover != "ID: 2<br>color: brown<br>material: wood" {
		t.Errorf("table hover = %q, want %q", table.Hover, "ID: 2<br>color: brown<br>material: wood")
	}
}

func TestRenderHoverAttributeOrder(t *testing.T) {
	g := graph.New()
	attrs := map[string]any{
		"zz_custom": "x",
		"mass":      1.5,
		"aa_custom": "y",
		"color":     "blue",
		"shape":     "round",
	}
	if err := g.AddNode(graph.Node{ID: 7, Name: "bowl", Attrs: attrs}); err != nil {
		t.Fatalf("AddNode() error: %v", err)
	}

	prims, err := Render(g, layout.PositionMap{7: {X: 10, Y: 10}})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Canonical attribute order first, then extras lexicographically.
	want := "ID: 7<br>color: blue<br>shape: round<br>mass: 1.5<br>aa_custom: y<br>zz_custom: x"
	if prims[0].Hover != want {
		t.Errorf("hover = %q, want %q", prims[0].Hover, want)
	}
}

func TestRenderIdempotent(t *testing.T) {
	g := cupTableGraph(t)
	pos := cupTablePositions()

	first, err := Render(g, pos)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := Render(g, pos)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Render() calls should produce identical sequences")
	}
}

func TestRenderParallelEdges(t *testing.T) {
	g := cupTableGraph(t)
	if err := g.AddEdge(graph.Edge{Source: 1, Target: 2, Type: "touching"}); err != nil {
		t.Fatalf("AddEdge() error: %v", err)
	}

	prims, err := Render(g, cupTablePositions())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Two parallel edges each keep their own line and label.
	kinds := make([]string, len(prims))
	for i, p := range prims {
		kinds[i] = p.Kind
	}
	want := []string{
		render.KindLine, render.KindLabel,
		render.KindLine, render.KindLabel,
		render.KindMarker, render.KindMarker,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("primitive kinds = %v, want %v", kinds, want)
	}
	if prims[1].Text != "on top of" || prims[3].Text != "touching" {
		t.Errorf("labels = %q, %q, want relation types in edge order", prims[1].Text, prims[3].Text)
	}
}

func TestRenderOptions(t *testing.T) {
	g := cupTableGraph(t)

	prims, err := Render(g, cupTablePositions(),
		render.WithNodeColor("#4a90d9"),
		render.WithEdgeWidth(1.5),
		render.WithFontSize(14),
	)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if prims[0].Width != 1.5 {
		t.Errorf("edge width = %v, want 1.5", prims[0].Width)
	}
	if prims[2].Color != "#4a90d9" {
		t.Errorf("marker color = %q, want %q", prims[2].Color, "#4a90d9")
	}
	if prims[2].FontSize != 14 {
		t.Errorf("marker font size = %v, want 14", prims[2].FontSize)
	}
}

func TestRenderMissingPosition(t *testing.T) {
	g := cupTableGraph(t)

	_, err := Render(g, layout.PositionMap{1: {X: 1, Y: 1}})
	if !errors.Is(err, ErrMissingPosition) {
		t.Errorf("Render() error = %v, want ErrMissingPosition", err)
	}
}

func TestRenderNilGraph(t *testing.T) {
	_, err := Render(nil, layout.PositionMap{})
	if !errors.Is(err, ErrNilGraph) {
		t.Errorf("Render() error = %v, want ErrNilGraph", err)
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	prims, err := Render(graph.New(), layout.PositionMap{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(prims) != 0 {
		t.Errorf("primitives = %d, want 0", len(prims))
	}
}
