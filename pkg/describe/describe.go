// Package describe turns an image into a structured scene description
// using a vision language model.
//
// [Gemini] is the production implementation; the [Describer] interface
// keeps everything downstream testable without network access. Model
// replies are JSON documents matching the scene schema, and
// [ExtractJSON] strips the markdown fences and prose some models wrap
// around them despite instructions.
package describe

import (
	"context"
	"strings"

	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// Describer produces a scene description for an image. name is the
// image's filename; implementations may use it for format detection
// and to fill in Scene.ImageName when the model leaves it blank.
type Describer interface {
	Describe(ctx context.Context, name string, image []byte) (*scene.Scene, error)
}

// Func adapts a function to the Describer interface, for tests and
// canned scenes.
type Func func(ctx context.Context, name string, image []byte) (*scene.Scene, error)

// Describe calls f.
func (f Func) Describe(ctx context.Context, name string, image []byte) (*scene.Scene, error) {
	return f(ctx, name, image)
}

// ExtractJSON returns the outermost JSON object in a model reply.
// Everything outside the braces is noise.
func ExtractJSON(reply string) (string, bool) {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start == -1 || end < start {
		return "", false
	}
	return reply[start : end+1], true
}
