// Package render defines the drawable primitive vocabulary shared by all
// rendering backends, plus format conversion helpers.
//
// # Overview
//
// Renderers in this project never paint pixels. They emit ordered
// [Primitive] sequences (lines, markers, labels, rectangles) that any
// surface can consume. The two renderers live in subpackages:
//
//   - [diagram]: free-floating node/edge diagrams from layout positions
//   - [overlay]: image-space overlays aligned to a source photo
//
// Serialization of primitive lists (SVG, JSON) lives in [sink]; a
// Graphviz-backed alternative for the graph itself lives in [dot].
//
// # Styling
//
// Both renderers accept functional options resolved into a [Style]:
//
//	prims, err := diagram.Render(g, positions,
//	    render.WithNodeColor("#4a90d9"),
//	    render.WithFontSize(14),
//	)
//
// Defaults reproduce the reference look: 0.3-wide white edges, blue
// size-20 markers, Helvetica 12 on black.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg). Conversion is the
// only place the render stack touches a subprocess, and it is bounded by
// the caller's context.
//
//	svg, err := sink.RenderSVG(prims, canvas)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [diagram]: github.com/mhagedorn/scenegraph/pkg/render/diagram
// [overlay]: github.com/mhagedorn/scenegraph/pkg/render/overlay
// [sink]: github.com/mhagedorn/scenegraph/pkg/render/sink
// [dot]: github.com/mhagedorn/scenegraph/pkg/render/dot
package render
