package sink

import (
	"context"

	"github.com/mhagedorn/scenegraph/pkg/render"
)

// RenderPDF renders the primitive sequence as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, prims []render.Primitive, c Canvas) ([]byte, error) {
	svg, err := RenderSVG(prims, c)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
