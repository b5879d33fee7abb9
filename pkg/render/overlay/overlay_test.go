package overlay

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/render"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

func ptr(v float64) *float64 { return &v }

func testScene() *scene.Scene {
	return &scene.Scene{
		ImageName: "kitchen.jpg",
		Objects: []scene.Object{
			{
				ID:          1,
				Name:        "cup",
				BoundingBox: scene.BoundingBox{XMin: 0.1, YMin: 0.2, XMax: 0.4, YMax: 0.6},
				Center:      scene.Point{X: 0.25, Y: 0.4},
				Attributes:  scene.Attributes{Color: "red", Mass: ptr(0.3)},
				Relations: []scene.Relation{
					{ObjectID: 2, ObjectName: "table", Type: "on top of", Confidence: 0.95},
				},
			},
			{
				ID:          2,
				Name:        "table",
				BoundingBox: scene.BoundingBox{XMin: 0.05, YMin: 0.5, XMax: 0.95, YMax: 0.98},
				Center:      scene.Point{X: 0.5, Y: 0.75},
				Attributes:  scene.Attributes{Color: "brown", Material: "wood"},
			},
		},
	}
}

func testGraph(t *testing.T, s *scene.Scene) *graph.Graph {
	t.Helper()
	g, err := graph.Build(s)
	if err != nil {
		t.Fatalf("graph.Build() error: %v", err)
	}
	return g
}

func testPositions() layout.PositionMap {
	return layout.PositionMap{
		1: {X: 0, Y: 0},
		2: {X: 100, Y: 100},
	}
}

func TestRenderBoundingBoxScaling(t *testing.T) {
	s := testScene()
	g := testGraph(t, s)

	prims, err := Render(s, g, testPositions(), 1000, 800)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Normalized bbox {0.1, 0.2, 0.4, 0.6} on a 1000x800 image.
	rect := prims[0]
	if rect.Kind != render.KindRect {
		t.Fatalf("prims[0].Kind = %q, want %q", rect.Kind, render.KindRect)
	}
	if rect.From.X != 100 || rect.From.Y != 160 {
		t.Errorf("rect from = %+v, want (100,160)", rect.From)
	}
	if rect.To.X != 400 || rect.To.Y != 480 {
		t.Errorf("rect to = %+v, want (400,480)", rect.To)
	}

	label := prims[1]
	if label.Kind != render.KindLabel || label.Text != "cup" {
		t.Fatalf("prims[1] = %+v, want cup label", label)
	}
	if label.At.X != 100 || label.At.Y != 160-labelGap {
		t.Errorf("label at = %+v, want (100, %v)", label.At, 160-labelGap)
	}
	if label.Anchor != render.AnchorStart {
		t.Errorf("label anchor = %q, want %q", label.Anchor, render.AnchorStart)
	}
}

func TestRenderPrimitiveOrder(t *testing.T) {
	s := testScene()
	g := testGraph(t, s)

	prims, err := Render(s, g, testPositions(), 1000, 800)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Object rects and labels first, then edge lines, then markers.
	kinds := make([]string, len(prims))
	for i, p := range prims {
		kinds[i] = p.Kind
	}
	want := []string{
		render.KindRect, render.KindLabel,
		render.KindRect, render.KindLabel,
		render.KindLine,
		render.KindMarker, render.KindMarker,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("primitive kinds = %v, want %v", kinds, want)
	}
}

func TestRenderPositionRescale(t *testing.T) {
	s := testScene()
	g := testGraph(t, s)

	prims, err := Render(s, g, testPositions(), 1000, 800)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Layout bbox (0,0)-(100,100) fits to the full 1000x800 image.
	line := prims[4]
	if line.From.X != 0 || line.From.Y != 0 {
		t.Errorf("line from = %+v, want (0,0)", line.From)
	}
	if line.To.X != 1000 || line.To.Y != 800 {
		t.Errorf("line to = %+v, want (1000,800)", line.To)
	}

	cup, table := prims[5], prims[6]
	if cup.At.X != 0 || cup.At.Y != 0 {
		t.Errorf("cup marker at = %+v, want (0,0)", cup.At)
	}
	if table.At.X != 1000 || table.At.Y != 800 {
		t.Errorf("table marker at = %+v, want (1000,800)", table.At)
	}
	if cup.Text != "cup" || table.Text != "table" {
		t.Errorf("marker texts = %q, %q, want cup, table", cup.Text, table.Text)
	}
	if cup.Hover != "ID: 1<br>color: red<br>mass: 0.3" {
		t.Errorf("cup hover = %q, want canonical attribute listing", cup.Hover)
	}
}

func TestRenderSingleNodeCollapsesToMidline(t *testing.T) {
	s := &scene.Scene{
		ImageName: "solo.jpg",
		Objects: []scene.Object{
			{
				ID:          5,
				Name:        "lamp",
				BoundingBox: scene.BoundingBox{XMin: 0.4, YMin: 0.4, XMax: 0.6, YMax: 0.6},
				Attributes:  scene.Attributes{Color: "white"},
			},
		},
	}
	g := testGraph(t, s)

	prims, err := Render(s, g, layout.PositionMap{5: {X: 42, Y: 17}}, 1000, 800)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	marker := prims[len(prims)-1]
	if marker.At.X != 500 || marker.At.Y != 400 {
		t.Errorf("marker at = %+v, want image center (500,400)", marker.At)
	}
}

func TestRenderIdempotent(t *testing.T) {
	s := testScene()
	g := testGraph(t, s)
	pos := testPositions()

	first, err := Render(s, g, pos, 1000, 800)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	second, err := Render(s, g, pos, 1000, 800)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Render() calls should produce identical sequences")
	}
}

func TestRenderOptions(t *testing.T) {
	s := testScene()
	g := testGraph(t, s)

	prims, err := Render(s, g, testPositions(), 1000, 800,
		render.WithNodeColor("#00ff00"),
		render.WithFontFamily("Courier"),
	)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if prims[0].Color != "#00ff00" {
		t.Errorf("rect color = %q, want %q", prims[0].Color, "#00ff00")
	}
	if prims[1].Font != "Courier" {
		t.Errorf("label font = %q, want %q", prims[1].Font, "Courier")
	}
	marker := prims[len(prims)-2]
	if marker.Color != "#00ff00" {
		t.Errorf("marker color = %q, want %q", marker.Color, "#00ff00")
	}
}

func TestRenderInvalidInput(t *testing.T) {
	s := testScene()
	g := testGraph(t, s)
	pos := testPositions()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"nil scene", func() error { _, err := Render(nil, g, pos, 1000, 800); return err }, ErrNilScene},
		{"nil graph", func() error { _, err := Render(s, nil, pos, 1000, 800); return err }, ErrNilGraph},
		{"zero width", func() error { _, err := Render(s, g, pos, 0, 800); return err }, ErrInvalidDimensions},
		{"negative height", func() error { _, err := Render(s, g, pos, 1000, -1); return err }, ErrInvalidDimensions},
		{"missing position", func() error {
			_, err := Render(s, g, layout.PositionMap{1: {X: 1, Y: 1}}, 1000, 800)
			return err
		}, ErrMissingPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
		})
	}
}
