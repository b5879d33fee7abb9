package scene

import (
	"encoding/json"
	"reflect"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestAttributesUnmarshalExtraKeys(t *testing.T) {
	src := `{"color":"white","size":"small","position":"on table","shape":"cylindrical",` +
		`"material":"ceramic","orientation":"upright","mass":0.3,"texture":"smooth",` +
		`"opacity":"translucent","handle_count":1}`

	var a Attributes
	if err := json.Unmarshal([]byte(src), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if a.Color != "white" || a.Texture != "smooth" {
		t.Errorf("typed fields not populated: %+v", a)
	}
	if a.Mass == nil || *a.Mass != 0.3 {
		t.Errorf("mass = %v, want 0.3", a.Mass)
	}
	if got := a.Extra["opacity"]; got != "translucent" {
		t.Errorf("extra opacity = %v, want translucent", got)
	}
	if got := a.Extra["handle_count"]; got != float64(1) {
		t.Errorf("extra handle_count = %v, want 1", got)
	}
	if _, ok := a.Extra["color"]; ok {
		t.Error("schema key leaked into Extra")
	}
}

func TestAttributesRoundTrip(t *testing.T) {
	a := Attributes{
		Color:       "brown",
		Size:        "large",
		Position:    "center",
		Shape:       "rectangular",
		Material:    "wood",
		Orientation: "horizontal",
		Mass:        ptr(12.5),
		Texture:     "grainy",
		Extra:       map[string]any{"finish": "matte"},
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Attributes
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(a, back) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, a)
	}
}

func TestAttributesMap(t *testing.T) {
	a := Attributes{
		Color:   "white",
		Shape:   "cylindrical",
		Mass:    ptr(0.3),
		Texture: "smooth",
		Extra:   map[string]any{"opacity": "translucent"},
	}

	m := a.Map()
	want := map[string]any{
		"color":   "white",
		"shape":   "cylindrical",
		"mass":    0.3,
		"texture": "smooth",
		"opacity": "translucent",
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Map() = %v, want %v", m, want)
	}
}

func TestAttributesMapOmitsAbsentMass(t *testing.T) {
	m := Attributes{Color: "red"}.Map()
	if _, ok := m["mass"]; ok {
		t.Error("absent mass should not appear in map")
	}
}

func TestSortedAttributeKeys(t *testing.T) {
	attrs := map[string]any{
		"texture":  "smooth",
		"color":    "white",
		"zebra":    "stripes",
		"mass":     0.3,
		"aperture": "wide",
		"shape":    "cylindrical",
	}

	got := SortedAttributeKeys(attrs)
	want := []string{"color", "shape", "mass", "texture", "aperture", "zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedAttributeKeys = %v, want %v", got, want)
	}
}

func TestSceneObjectLookup(t *testing.T) {
	s := &Scene{Objects: []Object{{ID: 1, Name: "cup"}, {ID: 2, Name: "table"}}}

	obj, ok := s.Object(2)
	if !ok || obj.Name != "table" {
		t.Errorf("Object(2) = %+v, %v", obj, ok)
	}
	if _, ok := s.Object(99); ok {
		t.Error("Object(99) should not exist")
	}
}
