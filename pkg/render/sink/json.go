package sink

import (
	"encoding/json"

	"github.com/mhagedorn/scenegraph/pkg/render"
)

type jsonOutput struct {
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Background string             `json:"background,omitempty"`
	Primitives []render.Primitive `json:"primitives"`
}

// RenderJSON exports the canvas and primitive sequence as a
// pretty-printed JSON document. This is the data interchange format for
// external rendering surfaces and for caching computed visuals; the
// primitive list round-trips unchanged.
//
// RenderJSON returns an error only if JSON marshaling fails. It does
// not modify prims and is safe to call concurrently.
func RenderJSON(prims []render.Primitive, c Canvas) ([]byte, error) {
	out := jsonOutput{
		Width:      c.Width,
		Height:     c.Height,
		Background: c.Background,
		Primitives: prims,
	}
	if out.Primitives == nil {
		out.Primitives = []render.Primitive{}
	}
	return json.MarshalIndent(out, "", "  ")
}
