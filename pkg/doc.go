// Package pkg provides the core libraries for scenegraph scene visualization.
//
// # Overview
//
// Scenegraph turns photographs into structured scene graphs: a vision model
// describes the objects in an image and how they relate, and the libraries
// here parse that description, build a graph, lay it out, and render it. The
// pkg directory is organized into four main areas:
//
//  1. Scene model ([scene], [graph]) - Parse and validate scene documents,
//     build object graphs
//  2. Visualization ([layout], [render], [imageio]) - Force-directed layout
//     and diagram/overlay rendering
//  3. Services ([describe], [cache], [store]) - Gemini vision client,
//     content-addressed caching, result persistence
//  4. Orchestration ([pipeline]) - The describe → build → layout → render
//     flow shared by CLI and server
//
// # Architecture
//
// The typical data flow through scenegraph:
//
//	Image (PNG/JPEG)
//	         ↓
//	    [describe] package (Gemini vision → scene document)
//	         ↓
//	    [scene] package (parse + validate JSON)
//	         ↓
//	    [graph] package (objects → nodes, relations → edges)
//	         ↓
//	    [layout] package (force-directed positions)
//	         ↓
//	    [render] package (primitives → SVG/PNG/PDF/JSON/DOT)
//
// # Quick Start
//
// Parse a scene document and render a diagram:
//
//	import (
//	    "os"
//	    "github.com/mhagedorn/scenegraph/pkg/scene"
//	    "github.com/mhagedorn/scenegraph/pkg/graph"
//	    "github.com/mhagedorn/scenegraph/pkg/layout"
//	    "github.com/mhagedorn/scenegraph/pkg/render/diagram"
//	    "github.com/mhagedorn/scenegraph/pkg/render/sink"
//	)
//
//	// 1. Parse the scene document
//	sc, _ := scene.ParseFile("scene.json")
//
//	// 2. Build the object graph
//	g, _ := graph.Build(sc)
//
//	// 3. Compute layout
//	positions, _ := layout.Compute(g, layout.Options{Width: 1200, Height: 800})
//
//	// 4. Render to SVG
//	prims, _ := diagram.Render(g, positions)
//	svg, _ := sink.RenderSVG(prims, sink.Canvas{Width: 1200, Height: 800})
//	os.WriteFile("scene.svg", svg, 0o644)
//
// # Main Packages
//
// ## Scene Model
//
// [scene] - Scene document model and JSON parsing. A scene is a list of
// objects with visual attributes (color, shape, material, position), spatial
// relations between objects, and optional semantic context (function,
// actions). Validation enforces identifier uniqueness, relation integrity,
// and bounding-box ordering.
//
// [graph] - Directed multigraph built from a scene: one node per object, one
// edge per relation. Preserves parallel edges between the same pair of
// objects. Supports attribute queries ([graph.Graph.FindByAttribute]),
// degree lookups, and a serializable [graph.Model] form.
//
// ## Visualization
//
// [layout] - Fruchterman-Reingold force-directed layout. Deterministic for a
// fixed seed; positions are normalized into the requested canvas with
// padding.
//
// [render] - Rendering primitives (circles, lines, text, images) and visual
// style options shared by all output modes.
//
//   - [render/diagram]: Node-link diagrams with labeled nodes and relation edges
//   - [render/overlay]: Bounding boxes and labels drawn over the source photo
//   - [render/dot]: Graphviz DOT output via gographviz
//   - [render/sink]: Output encoders (SVG, JSON) with PNG/PDF conversion in [render]
//
// [imageio] - Image decoding and probing (PNG, JPEG dimensions) plus base64
// data-URI encoding for overlay embedding.
//
// ## Services
//
// [describe] - Gemini vision client that turns an image into a scene
// document. Prompts request strict JSON; responses are validated before use.
//
// [cache] - Content-addressed caching for pipeline stages. Backends: file
// (CLI default), Redis (server deployments), null (disabled). Keys hash the
// stage inputs so any change invalidates downstream entries.
//
// [store] - Persistence for rendered results. FileStore writes JSON records
// to disk; MongoStore targets a MongoDB collection with the same document
// shape.
//
// [httputil] - HTTP client with retry/backoff used by the describe layer.
//
// ## Orchestration
//
// [pipeline] - Complete visualization pipeline (describe → build → layout →
// render) used by both CLI and server. Ensures consistent behavior across
// entry points, with per-stage cache lookups.
//
// [config] - TOML configuration with environment overrides
// (GOOGLE_API_KEY, REDIS_ADDR, MONGODB_URI, and friends).
//
// [errors] - Coded errors shared across packages; codes map to HTTP status
// in the server.
//
// [observability] - Hook points for recording stage timings.
//
// # Common Workflows
//
// Describe an image with Gemini:
//
//	gem, _ := describe.NewGemini(ctx, describe.GeminiOptions{APIKey: key})
//	defer gem.Close()
//	sc, _ := gem.Describe(ctx, "kitchen.jpg", imageData)
//
// Query objects by attribute:
//
//	matches := g.FindByAttribute("color", "red")
//	for _, id := range matches {
//	    node, _ := g.Node(id)
//	    fmt.Printf("%s has %d relations\n", node.Name, g.Degree(id))
//	}
//
// Run the full pipeline with a file cache:
//
//	c, _ := cache.NewFileCache("")
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Describer = gem
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Image:   "kitchen.jpg",
//	    Mode:    pipeline.ModeDiagram,
//	    Formats: []string{"svg", "png"},
//	})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/layout/...       # Specific package
//	go test -run Example           # Examples only
//
// [scene]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/scene
// [graph]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/graph
// [layout]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/layout
// [render]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/render
// [render/diagram]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/render/diagram
// [render/overlay]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/render/overlay
// [render/dot]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/render/dot
// [render/sink]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/render/sink
// [imageio]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/imageio
// [describe]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/describe
// [cache]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/store
// [httputil]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/httputil
// [pipeline]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/mhagedorn/scenegraph/pkg/observability
package pkg
