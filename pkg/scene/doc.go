// Package scene defines the scene description model: objects with typed
// attributes and directed semantic relations, parsed from JSON and
// validated before graph construction.
//
// # Overview
//
// A scene describes what a vision model (or a human) found in an image:
// a list of objects, each with a normalized bounding box, a center point,
// a fixed attribute set (color, size, position, shape, material,
// orientation, mass, texture), and relations pointing at other objects
// ("on top of", "next to"). Scenes are the single input to the graph
// pipeline; everything downstream (graph, layout, rendering) is derived
// from an immutable scene snapshot.
//
// # Parsing and Validation
//
// [Parse] decodes a JSON document and validates it in one step:
//
//	s, err := scene.Parse(data)
//	if err != nil {
//	    // errors.ErrCodeSchemaViolation with a field-level message
//	}
//
// Validation enforces the schema the upstream vision prompt promises:
// required attribute keys, bounding box ordering (x_min < x_max,
// y_min < y_max), normalized coordinates in [0,1], and relation field
// presence. A scene that fails validation never reaches the graph
// builder.
//
// # Attribute Escape Hatch
//
// The attribute set is typed, but vision models occasionally return keys
// outside the schema. Unrecognized keys survive a parse/serialize round
// trip through [Attributes.Extra] instead of being dropped.
package scene
