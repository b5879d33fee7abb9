package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/describe"
	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/imageio"
	"github.com/mhagedorn/scenegraph/pkg/observability"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// ============================================================================
// Runner
// ============================================================================

// Runner executes pipeline stages with caching between them.
type Runner struct {
	// Cache stores per-stage results. Never nil after NewRunner.
	Cache cache.Cache

	// Keyer derives the cache keys. Never nil after NewRunner.
	Keyer cache.Keyer

	// Describer turns images into scene documents. Required for runs
	// that start from an image; scene-document runs work without it.
	Describer describe.Describer

	// Images resolves image names to pixel dimensions for overlay
	// frames. Optional; explicit frame dimensions and decodable image
	// inputs work without it.
	Images imageio.Accessor

	// Logger receives stage progress. Never nil after NewRunner.
	Logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching, a
// nil keyer selects the default key scheme, and a nil logger discards
// output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// logger returns the effective logger for one run.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// ============================================================================
// Execute
// ============================================================================

// Execute runs describe, build, layout and render in order and returns
// the combined result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	logger := r.logger(opts)
	hooks := observability.Pipeline()
	result := &Result{}

	// Stage 1: describe the image (or parse the provided document).
	hooks.OnDescribeStart(ctx, opts.Model, opts.imageName())
	start := time.Now()
	sc, sceneHit, err := r.DescribeWithCacheInfo(ctx, opts)
	result.Stats.DescribeTime = time.Since(start)
	if sc != nil {
		result.Stats.ObjectCount = len(sc.Objects)
	}
	hooks.OnDescribeComplete(ctx, opts.Model, opts.imageName(), result.Stats.ObjectCount, result.Stats.DescribeTime, err)
	if err != nil {
		return nil, err
	}
	result.Scene = sc
	result.CacheInfo.SceneHit = sceneHit

	sceneData, err := scene.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	result.SceneHash = cache.Hash(sceneData)
	logger.Info("described scene",
		"image", sc.ImageName,
		"objects", result.Stats.ObjectCount,
		"cached", sceneHit,
		"duration", result.Stats.DescribeTime)

	// Stage 2: build the relation graph.
	hooks.OnBuildStart(ctx, sc.ImageName, result.Stats.ObjectCount)
	start = time.Now()
	g, graphHit, err := r.BuildWithCacheInfo(ctx, sc, opts)
	result.Stats.BuildTime = time.Since(start)
	if g != nil {
		result.Stats.NodeCount = g.NodeCount()
		result.Stats.EdgeCount = g.EdgeCount()
	}
	hooks.OnBuildComplete(ctx, sc.ImageName, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.CacheInfo.GraphHit = graphHit

	graphData, err := graph.MarshalModel(g.Export())
	if err != nil {
		return nil, fmt.Errorf("marshal graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)
	logger.Info("built graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", graphHit,
		"duration", result.Stats.BuildTime)

	// Stage 3: compute the layout.
	hooks.OnLayoutStart(ctx, "spring", result.Stats.NodeCount)
	start = time.Now()
	positions, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, "spring", result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Positions = positions
	result.CacheInfo.LayoutHit = layoutHit
	logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: render the artifacts.
	hooks.OnRenderStart(ctx, opts.Mode, opts.Formats)
	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, g, positions, opts)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Mode, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	logger.Info("rendered artifacts",
		"mode", opts.Mode,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}
