package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"slices"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/errors"
	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/observability"
	"github.com/mhagedorn/scenegraph/pkg/render"
	"github.com/mhagedorn/scenegraph/pkg/render/diagram"
	"github.com/mhagedorn/scenegraph/pkg/render/dot"
	"github.com/mhagedorn/scenegraph/pkg/render/overlay"
	"github.com/mhagedorn/scenegraph/pkg/render/sink"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// pngScale oversamples raster output for crisp text.
const pngScale = 2.0

// ============================================================================
// Stage 4: render
// ============================================================================

// RenderWithCacheInfo renders every requested format and reports
// whether all of them were served from the cache. A run is a cache hit
// only when each format is present; a partial hit re-renders
// everything so the formats stay consistent with each other.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc *scene.Scene, g *graph.Graph, positions layout.PositionMap, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	if opts.IsOverlay() && needsPrimitives(opts.Formats) {
		width, height, err := r.resolveFrame(ctx, sc, opts)
		if err != nil {
			return nil, false, err
		}
		opts.ImageWidth, opts.ImageHeight = width, height
	}

	contentHash, err := renderContentHash(sc, g, positions)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		allCached := true
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(contentHash, opts.artifactKeyOpts(format))
			data, found, gerr := r.Cache.Get(ctx, key)
			if gerr != nil || !found {
				allCached = false
				break
			}
			cached[format] = data
		}
		if allCached {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return cached, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	artifacts, err := RenderArtifacts(ctx, sc, g, positions, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(contentHash, opts.artifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, false, nil
}

// Render renders every requested format.
func (r *Runner) Render(ctx context.Context, sc *scene.Scene, g *graph.Graph, positions layout.PositionMap, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sc, g, positions, opts)
	return artifacts, err
}

// renderContentHash fingerprints everything the renderers consume.
// Overlay output depends on scene geometry as well as the graph and
// positions, so all three inputs participate.
func renderContentHash(sc *scene.Scene, g *graph.Graph, positions layout.PositionMap) (string, error) {
	sceneData, err := scene.Marshal(sc)
	if err != nil {
		return "", fmt.Errorf("marshal scene: %w", err)
	}
	graphData, err := graph.MarshalModel(g.Export())
	if err != nil {
		return "", fmt.Errorf("marshal graph: %w", err)
	}
	posData, err := json.Marshal(positions)
	if err != nil {
		return "", fmt.Errorf("marshal positions: %w", err)
	}
	return cache.Hash(slices.Concat(sceneData, graphData, posData)), nil
}

// ============================================================================
// Artifact generation
// ============================================================================

// RenderArtifacts renders the laid-out graph into every requested
// format. Overlay mode expects resolved frame dimensions in opts; the
// runner fills them before calling here.
func RenderArtifacts(ctx context.Context, sc *scene.Scene, g *graph.Graph, positions layout.PositionMap, opts Options) (map[string][]byte, error) {
	var (
		prims  []render.Primitive
		canvas sink.Canvas
	)
	if needsPrimitives(opts.Formats) {
		var err error
		prims, canvas, err = buildPrimitives(sc, g, positions, opts)
		if err != nil {
			return nil, err
		}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(prims, canvas)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, prims, canvas, pngScale)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, prims, canvas)
		case FormatJSON:
			data, err = sink.RenderJSON(prims, canvas)
		case FormatDOT:
			data = []byte(dot.ToDOT(g, dot.Options{Detailed: opts.Detailed}))
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// needsPrimitives reports whether any requested format draws
// primitives. DOT renders straight from the graph.
func needsPrimitives(formats []string) bool {
	for _, f := range formats {
		if f != FormatDOT {
			return true
		}
	}
	return false
}

// buildPrimitives dispatches to the renderer for the selected mode.
func buildPrimitives(sc *scene.Scene, g *graph.Graph, positions layout.PositionMap, opts Options) ([]render.Primitive, sink.Canvas, error) {
	style := render.NewStyle(opts.styleOptions()...)

	if opts.IsOverlay() {
		prims, err := overlay.Render(sc, g, positions, opts.ImageWidth, opts.ImageHeight, opts.styleOptions()...)
		if err != nil {
			return nil, sink.Canvas{}, err
		}
		// Overlays sit on top of the source image, so the canvas stays
		// transparent unless a background was asked for explicitly.
		background := ""
		if opts.Style != nil {
			background = opts.Style.Background
		}
		return prims, sink.Canvas{Width: opts.ImageWidth, Height: opts.ImageHeight, Background: background}, nil
	}

	prims, err := diagram.Render(g, positions, opts.styleOptions()...)
	if err != nil {
		return nil, sink.Canvas{}, err
	}
	return prims, sink.Canvas{Width: opts.Width, Height: opts.Height, Background: style.Background}, nil
}

// resolveFrame determines the pixel frame an overlay draws onto.
// Explicit dimensions win, then the dimensions decoded from the image
// input, then the Images accessor.
func (r *Runner) resolveFrame(ctx context.Context, sc *scene.Scene, opts Options) (float64, float64, error) {
	if opts.ImageWidth > 0 && opts.ImageHeight > 0 {
		return opts.ImageWidth, opts.ImageHeight, nil
	}

	if len(opts.ImageData) > 0 {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(opts.ImageData)); err == nil {
			return float64(cfg.Width), float64(cfg.Height), nil
		}
	}

	if opts.Image != "" {
		if f, err := os.Open(opts.Image); err == nil {
			cfg, _, derr := image.DecodeConfig(f)
			f.Close()
			if derr == nil {
				return float64(cfg.Width), float64(cfg.Height), nil
			}
		}
	}

	if r.Images != nil && sc.ImageName != "" {
		if info, err := r.Images.Resolve(ctx, sc.ImageName); err == nil {
			return float64(info.Width), float64(info.Height), nil
		}
	}

	return 0, 0, errors.New(errors.ErrCodeInvalidInput,
		"overlay rendering requires image dimensions (set image_width and image_height)")
}
