package sink

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mhagedorn/scenegraph/pkg/render"
)

// ErrInvalidCanvas indicates non-positive canvas dimensions.
var ErrInvalidCanvas = errors.New("canvas dimensions must be positive")

// Canvas describes the output surface a primitive sequence draws onto.
type Canvas struct {
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	Background string  `json:"background,omitempty" bson:"background,omitempty"`
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// RenderSVG serializes the primitive sequence as a standalone SVG
// document. Marker hover text becomes a native <title> tooltip; marker
// text is drawn centered on the marker. Primitives render in slice
// order, so later entries paint on top.
func RenderSVG(prims []render.Primitive, c Canvas) ([]byte, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, c.Width, c.Height)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.Width, c.Height, c.Width, c.Height)

	if c.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", xmlEscaper.Replace(c.Background))
	}

	for i, p := range prims {
		if err := writePrimitive(&buf, p); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func writePrimitive(buf *bytes.Buffer, p render.Primitive) error {
	switch p.Kind {
	case render.KindLine:
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%g"/>`+"\n",
			p.From.X, p.From.Y, p.To.X, p.To.Y, xmlEscaper.Replace(p.Color), p.Width)

	case render.KindMarker:
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s">`,
			p.At.X, p.At.Y, p.Size/2, xmlEscaper.Replace(p.Color))
		if p.Hover != "" {
			fmt.Fprintf(buf, "<title>%s</title>", xmlEscaper.Replace(p.Hover))
		}
		buf.WriteString("</circle>\n")
		if p.Text != "" {
			fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%g" fill="%s">%s</text>`+"\n",
				p.At.X, p.At.Y, xmlEscaper.Replace(fontOr(p.Font)), fontSizeOr(p.FontSize), render.DefaultLabelColor, xmlEscaper.Replace(p.Text))
		}

	case render.KindLabel:
		anchor := p.Anchor
		if anchor == "" {
			anchor = render.AnchorMiddle
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="%s" font-family="%s" font-size="%g" fill="%s">%s</text>`+"\n",
			p.At.X, p.At.Y, anchor, xmlEscaper.Replace(fontOr(p.Font)), fontSizeOr(p.FontSize), xmlEscaper.Replace(p.Color), xmlEscaper.Replace(p.Text))

	case render.KindRect:
		x := math.Min(p.From.X, p.To.X)
		y := math.Min(p.From.Y, p.To.Y)
		w := math.Abs(p.To.X - p.From.X)
		h := math.Abs(p.To.Y - p.From.Y)
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			x, y, w, h, xmlEscaper.Replace(p.Color), p.Width)

	default:
		return fmt.Errorf("unknown primitive kind %q", p.Kind)
	}
	return nil
}

func fontOr(f string) string {
	if f == "" {
		return render.DefaultFontFamily
	}
	return f
}

func fontSizeOr(v float64) float64 {
	if v == 0 {
		return render.DefaultFontSize
	}
	return v
}
