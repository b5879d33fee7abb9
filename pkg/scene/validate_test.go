package scene

import (
	"strings"
	"testing"

	"github.com/mhagedorn/scenegraph/pkg/errors"
)

func validScene() *Scene {
	return &Scene{
		ImageName: "kitchen.jpg",
		Objects: []Object{
			{
				ID:          1,
				Name:        "cup",
				BoundingBox: BoundingBox{XMin: 0.1, YMin: 0.2, XMax: 0.4, YMax: 0.6},
				Center:      Point{X: 0.25, Y: 0.4},
				Attributes: Attributes{
					Color: "white", Size: "small", Position: "foreground",
					Shape: "cylindrical", Material: "ceramic",
					Orientation: "upright", Mass: ptr(0.3), Texture: "smooth",
				},
				Relations: []Relation{
					{ObjectID: 2, ObjectName: "table", Type: "on top of", Confidence: 0.95},
				},
			},
			{
				ID:          2,
				Name:        "table",
				BoundingBox: BoundingBox{XMin: 0, YMin: 0.5, XMax: 1, YMax: 1},
				Center:      Point{X: 0.5, Y: 0.75},
				Attributes: Attributes{
					Color: "brown", Size: "large", Position: "background",
					Shape: "rectangular", Material: "wood",
					Orientation: "horizontal", Mass: ptr(24), Texture: "grainy",
				},
			},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validScene()); err != nil {
		t.Fatalf("valid scene rejected: %v", err)
	}
}

func TestValidateEmptySceneOK(t *testing.T) {
	if err := Validate(&Scene{}); err != nil {
		t.Fatalf("empty scene rejected: %v", err)
	}
}

func TestValidateViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Scene)
		wantMsg string
	}{
		{
			"missing color",
			func(s *Scene) { s.Objects[0].Attributes.Color = "" },
			"attributes.color: field is required",
		},
		{
			"missing mass",
			func(s *Scene) { s.Objects[0].Attributes.Mass = nil },
			"attributes.mass: field is required",
		},
		{
			"missing name",
			func(s *Scene) { s.Objects[1].Name = "" },
			"name: field is required",
		},
		{
			"bounding box ordering",
			func(s *Scene) { s.Objects[0].BoundingBox.XMax = 0.05 },
			"x_max: must be greater than x_min",
		},
		{
			"bounding box out of range",
			func(s *Scene) { s.Objects[0].BoundingBox.YMax = 1.3 },
			"y_max: must not exceed 1",
		},
		{
			"center out of range",
			func(s *Scene) { s.Objects[0].Center.X = 1.5 },
			"center.x: must not exceed 1",
		},
		{
			"negative object id",
			func(s *Scene) { s.Objects[0].ID = -1 },
			"id: must be at least 0",
		},
		{
			"missing relation type",
			func(s *Scene) { s.Objects[0].Relations[0].Type = "" },
			"relation_type: field is required",
		},
		{
			"confidence out of range",
			func(s *Scene) { s.Objects[0].Relations[0].Confidence = 1.2 },
			"relation_confidence: must not exceed 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScene()
			tt.mutate(s)

			err := Validate(s)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, errors.ErrCodeSchemaViolation) {
				t.Errorf("error code = %v, want SCHEMA_VIOLATION", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateNilScene(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatal("nil scene should fail validation")
	}
}
