package scene

import (
	"encoding/json"
	"slices"
)

// =============================================================================
// Constants - Attribute Schema
// =============================================================================

// CanonicalAttributeKeys lists the schema's attribute keys in canonical
// order. Renderers and cache keys iterate attributes in this order so
// derived output is reproducible.
var CanonicalAttributeKeys = []string{
	"color", "size", "position", "shape", "material", "orientation", "mass", "texture",
}

// knownAttributeKeys guards the Extra escape hatch: keys in this set bind
// to struct fields, everything else lands in Extra.
var knownAttributeKeys = func() map[string]bool {
	m := make(map[string]bool, len(CanonicalAttributeKeys))
	for _, k := range CanonicalAttributeKeys {
		m[k] = true
	}
	return m
}()

// =============================================================================
// Scene - Top-Level Document
// =============================================================================

// Scene is a structured description of a single image: the objects found
// in it and the relations between them. Scenes are immutable after Parse;
// the pipeline never mutates one in place.
type Scene struct {
	ImageName string   `json:"image_name,omitempty" bson:"image_name,omitempty"`
	Objects   []Object `json:"objects" bson:"objects" validate:"dive"`
}

// Object returns the object with the given id and true, or a zero
// object and false if no object carries that id.
func (s *Scene) Object(id int) (Object, bool) {
	for _, obj := range s.Objects {
		if obj.ID == id {
			return obj, true
		}
	}
	return Object{}, false
}

// =============================================================================
// Object - Scene Element
// =============================================================================

// Object is a single detected element of a scene. IDs are unique within
// a scene (enforced at graph build, not parse). The bounding box and
// center use normalized image coordinates in [0,1].
type Object struct {
	ID          int             `json:"id" bson:"id" validate:"gte=0"`
	Name        string          `json:"name" bson:"name" validate:"required"`
	BoundingBox BoundingBox     `json:"bounding_box" bson:"bounding_box"`
	Center      Point           `json:"center" bson:"center"`
	Attributes  Attributes      `json:"attributes" bson:"attributes"`
	Relations   []Relation      `json:"relations,omitempty" bson:"relations,omitempty" validate:"omitempty,dive"`
	Semantic    SemanticContext `json:"semantic_context,omitempty" bson:"semantic_context,omitempty"`
}

// BoundingBox is an axis-aligned box in normalized image coordinates.
// Validation requires x_min < x_max and y_min < y_max.
type BoundingBox struct {
	XMin float64 `json:"x_min" bson:"x_min" validate:"gte=0,lte=1"`
	YMin float64 `json:"y_min" bson:"y_min" validate:"gte=0,lte=1"`
	XMax float64 `json:"x_max" bson:"x_max" validate:"gte=0,lte=1,gtfield=XMin"`
	YMax float64 `json:"y_max" bson:"y_max" validate:"gte=0,lte=1,gtfield=YMin"`
}

// Point is a normalized 2-D coordinate in [0,1].
type Point struct {
	X float64 `json:"x" bson:"x" validate:"gte=0,lte=1"`
	Y float64 `json:"y" bson:"y" validate:"gte=0,lte=1"`
}

// =============================================================================
// Relation - Directed Semantic Edge
// =============================================================================

// Relation is a directed semantic edge owned by its source object.
// ObjectID names the target; ObjectName is denormalized for readability
// and never authoritative. Confidence is informational only - nothing
// downstream filters on it.
type Relation struct {
	ObjectID    int     `json:"object_id" bson:"object_id" validate:"gte=0"`
	ObjectName  string  `json:"object_name,omitempty" bson:"object_name,omitempty"`
	Type        string  `json:"relation_type" bson:"relation_type" validate:"required"`
	Description string  `json:"relation_description,omitempty" bson:"relation_description,omitempty"`
	Confidence  float64 `json:"relation_confidence,omitempty" bson:"relation_confidence,omitempty" validate:"gte=0,lte=1"`
}

// =============================================================================
// SemanticContext - Carried Through, Unused by Layout
// =============================================================================

// SemanticContext captures what an object is for. It rides along in
// serialized scenes and results but layout and rendering ignore it.
type SemanticContext struct {
	Function string   `json:"function,omitempty" bson:"function,omitempty"`
	Actions  []Action `json:"actions,omitempty" bson:"actions,omitempty"`
}

// Action is a single affordance of an object ("pour", "hold").
type Action struct {
	Name        string `json:"action_name" bson:"action_name"`
	Description string `json:"action_description,omitempty" bson:"action_description,omitempty"`
}

// =============================================================================
// Attributes - Typed Set with Escape Hatch
// =============================================================================

// Attributes is the fixed attribute set every scene object carries. Mass
// is a pointer so a present-but-zero mass survives the required check.
// Keys outside the schema land in Extra and survive round trips.
type Attributes struct {
	Color       string   `json:"color" bson:"color" validate:"required"`
	Size        string   `json:"size" bson:"size" validate:"required"`
	Position    string   `json:"position" bson:"position" validate:"required"`
	Shape       string   `json:"shape" bson:"shape" validate:"required"`
	Material    string   `json:"material" bson:"material" validate:"required"`
	Orientation string   `json:"orientation" bson:"orientation" validate:"required"`
	Mass        *float64 `json:"mass,omitempty" bson:"mass,omitempty" validate:"required"`
	Texture     string   `json:"texture" bson:"texture" validate:"required"`

	// Extra holds unrecognized attribute keys from the source document.
	Extra map[string]any `json:"-" bson:"extra,omitempty"`
}

// UnmarshalJSON decodes the typed fields and routes unknown keys into Extra.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	type plain Attributes
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownAttributeKeys[k] {
			delete(raw, k)
		}
	}
	if len(raw) > 0 {
		p.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			p.Extra[k] = val
		}
	}

	*a = Attributes(p)
	return nil
}

// MarshalJSON flattens Extra back into the attribute object so unknown
// keys round-trip. Extra keys shadowed by schema keys are dropped.
func (a Attributes) MarshalJSON() ([]byte, error) {
	type plain Attributes
	data, err := json.Marshal(plain(a))
	if err != nil {
		return nil, err
	}
	if len(a.Extra) == 0 {
		return data, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range a.Extra {
		if !knownAttributeKeys[k] {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// Map flattens the attribute set into a key→value map: canonical keys
// that are present plus all extras. Absent mass and empty strings are
// omitted rather than zeroed, so the map mirrors the source document.
func (a Attributes) Map() map[string]any {
	m := make(map[string]any, len(CanonicalAttributeKeys)+len(a.Extra))
	put := func(k, v string) {
		if v != "" {
			m[k] = v
		}
	}
	put("color", a.Color)
	put("size", a.Size)
	put("position", a.Position)
	put("shape", a.Shape)
	put("material", a.Material)
	put("orientation", a.Orientation)
	put("texture", a.Texture)
	if a.Mass != nil {
		m["mass"] = *a.Mass
	}
	for k, v := range a.Extra {
		if !knownAttributeKeys[k] {
			m[k] = v
		}
	}
	return m
}

// SortedAttributeKeys orders a flattened attribute map for display and
// hashing: canonical keys first (in schema order), then every other key
// lexicographically. Keys absent from the map are skipped.
func SortedAttributeKeys(attrs map[string]any) []string {
	keys := make([]string, 0, len(attrs))
	for _, k := range CanonicalAttributeKeys {
		if _, ok := attrs[k]; ok {
			keys = append(keys, k)
		}
	}
	var extras []string
	for k := range attrs {
		if !knownAttributeKeys[k] {
			extras = append(extras, k)
		}
	}
	slices.Sort(extras)
	return append(keys, extras...)
}
