package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

func sampleResult(id string, created time.Time) Result {
	mass := 0.3
	sc := &scene.Scene{
		ImageName: "kitchen.jpg",
		Objects: []scene.Object{{
			ID:          1,
			Name:        "cup",
			BoundingBox: scene.BoundingBox{XMin: 0.1, YMin: 0.2, XMax: 0.4, YMax: 0.6},
			Center:      scene.Point{X: 0.25, Y: 0.4},
			Attributes: scene.Attributes{
				Color: "red", Size: "small", Position: "on table",
				Shape: "cylindrical", Material: "ceramic",
				Orientation: "upright", Mass: &mass, Texture: "smooth",
			},
		}},
	}
	model := graph.Model{
		Nodes: []graph.Node{{ID: 1, Name: "cup", Attrs: map[string]any{"color": "red"}}},
		Edges: []graph.Edge{},
	}
	return Result{
		ID:        id,
		CreatedAt: created,
		Image:     "kitchen.jpg",
		Mode:      "diagram",
		Format:    "svg",
		Scene:     sc,
		Graph:     &model,
		Positions: layout.PositionMap{1: {X: 500, Y: 400}},
		Artifact:  []byte("<svg/>"),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	want := sampleResult("run-1", time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if got.Image != "kitchen.jpg" || got.Mode != "diagram" || got.Format != "svg" {
		t.Errorf("metadata = %q/%q/%q", got.Image, got.Mode, got.Format)
	}
	if got.Scene == nil || len(got.Scene.Objects) != 1 || got.Scene.Objects[0].Name != "cup" {
		t.Errorf("scene did not survive the round trip: %+v", got.Scene)
	}
	if got.Graph == nil || len(got.Graph.Nodes) != 1 || got.Graph.Nodes[0].Attrs["color"] != "red" {
		t.Errorf("graph model did not survive the round trip: %+v", got.Graph)
	}
	if got.Positions[1] != (layout.Point{X: 500, Y: 400}) {
		t.Errorf("Positions[1] = %v, want {500 400}", got.Positions[1])
	}
	if !bytes.Equal(got.Artifact, want.Artifact) {
		t.Errorf("Artifact = %q, want %q", got.Artifact, want.Artifact)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	_, err = s.Get(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	r := sampleResult("run-1", time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := s.Delete(ctx, "run-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "run-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	base := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		r := sampleResult(id, base.Add(time.Duration(i)*time.Minute))
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d results, want 3", len(all))
	}
	for i, want := range []string{"run-c", "run-b", "run-a"} {
		if all[i].ID != want {
			t.Errorf("all[%d].ID = %q, want %q", i, all[i].ID, want)
		}
	}

	top, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if len(top) != 2 || top[0].ID != "run-c" || top[1].ID != "run-b" {
		t.Errorf("List(2) = %v, want [run-c run-b]", ids(top))
	}
}

func TestFileStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	first := sampleResult("run-1", time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC))
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := sampleResult("run-1", time.Date(2026, 8, 21, 11, 0, 0, 0, time.UTC))
	second.Format = "png"
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("re-Save: %v", err)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List returned %d results after re-save, want 1", len(all))
	}
	if all[0].Format != "png" {
		t.Errorf("Format = %q, want %q", all[0].Format, "png")
	}
}

func TestFileStoreFileNaming(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	r := sampleResult("run-1", time.Date(2026, 8, 21, 10, 30, 5, 0, time.UTC))
	if err := s.Save(context.Background(), r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := filepath.Join(dir, "output_2026-08-21_10-30-05_run-1.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected result file %s: %v", want, err)
	}
}

func TestFileStoreEmptyID(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Save(context.Background(), Result{}); err == nil {
		t.Error("Save should reject a result without an id")
	}
}

func TestFileStoreContextCancelled(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, sampleResult("run-1", time.Now())); !errors.Is(err, context.Canceled) {
		t.Errorf("Save error = %v, want context.Canceled", err)
	}
	if _, err := s.Get(ctx, "run-1"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
}

func TestNewResult(t *testing.T) {
	a, b := NewResult(), NewResult()
	if a.ID == "" || b.ID == "" {
		t.Fatal("NewResult should assign ids")
	}
	if a.ID == b.ID {
		t.Error("NewResult should assign unique ids")
	}
	if a.CreatedAt.IsZero() {
		t.Error("NewResult should stamp CreatedAt")
	}
}

// TestMongoResultDocumentShape verifies the bson form MongoStore writes
// without requiring a live server.
func TestMongoResultDocumentShape(t *testing.T) {
	want := sampleResult("run-1", time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC))

	data, err := bson.Marshal(want)
	if err != nil {
		t.Fatalf("bson.Marshal: %v", err)
	}
	raw := bson.Raw(data)

	if id, ok := raw.Lookup("_id").StringValueOK(); !ok || id != "run-1" {
		t.Errorf("_id = %v, want %q", raw.Lookup("_id"), "run-1")
	}
	if _, ok := raw.Lookup("created_at").TimeOK(); !ok {
		t.Errorf("created_at = %v, want a bson datetime", raw.Lookup("created_at"))
	}
	if x, ok := raw.Lookup("positions", "1", "x").DoubleOK(); !ok || x != 500 {
		t.Errorf("positions.1.x = %v, want 500", raw.Lookup("positions", "1", "x"))
	}
	if name, ok := raw.Lookup("scene", "objects", "0", "name").StringValueOK(); !ok || name != "cup" {
		t.Errorf("scene.objects.0.name = %v, want %q", raw.Lookup("scene", "objects", "0", "name"), "cup")
	}

	var got Result
	if err := bson.Unmarshal(data, &got); err != nil {
		t.Fatalf("bson.Unmarshal: %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if got.Positions[1] != (layout.Point{X: 500, Y: 400}) {
		t.Errorf("Positions[1] = %v, want {500 400}", got.Positions[1])
	}
	if got.Scene == nil || got.Scene.Objects[0].Attributes.Mass == nil || *got.Scene.Objects[0].Attributes.Mass != 0.3 {
		t.Errorf("scene attributes did not survive the bson round trip: %+v", got.Scene)
	}
	if !bytes.Equal(got.Artifact, want.Artifact) {
		t.Errorf("Artifact = %q, want %q", got.Artifact, want.Artifact)
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
