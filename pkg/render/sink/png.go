package sink

import (
	"context"

	"github.com/mhagedorn/scenegraph/pkg/render"
)

// RenderPNG renders the primitive sequence as PNG via SVG conversion
// with the given scale factor (0 means the 2x default).
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, prims []render.Primitive, c Canvas, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 2.0
	}
	svg, err := RenderSVG(prims, c)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
