package scene

import (
	"encoding/json"
	"os"

	"github.com/mhagedorn/scenegraph/pkg/errors"
)

// Parse decodes a JSON scene document and validates it against the
// schema. Returns a SCHEMA_VIOLATION error on malformed JSON or any
// constraint failure; a scene that parses is safe to hand to the graph
// builder.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaViolation, err, "scene is not valid JSON")
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads and parses a scene document from disk.
func ParseFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal serializes a scene to pretty-printed JSON bytes.
func Marshal(s *Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteFile writes a scene to a JSON file.
func WriteFile(s *Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
