// Package sink serializes drawable primitive sequences into output
// formats.
//
// # Overview
//
// A sink turns the ordered []render.Primitive produced by the diagram
// or overlay renderer into bytes:
//
//   - SVG: standalone vector output with native hover tooltips
//   - JSON: data interchange for external rendering surfaces
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster output (requires rsvg-convert)
//
// Every sink takes the primitives plus a [Canvas] describing the output
// surface (dimensions and background):
//
//	svg, err := sink.RenderSVG(prims, sink.Canvas{Width: 1000, Height: 1000, Background: "black"})
//	doc, err := sink.RenderJSON(prims, canvas)
//	pdf, err := sink.RenderPDF(ctx, prims, canvas)
//	png, err := sink.RenderPNG(ctx, prims, canvas, 2.0)
//
// # JSON Output
//
// [RenderJSON] emits the canvas and the full primitive list unchanged,
// enabling round-trip rendering and caching of computed visuals.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] first render SVG, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/mhagedorn/scenegraph/pkg/render.ToPDF
// [render.ToPNG]: github.com/mhagedorn/scenegraph/pkg/render.ToPNG
package sink
