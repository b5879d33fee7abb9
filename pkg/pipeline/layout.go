package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/observability"
)

// ============================================================================
// Stage 3: layout
// ============================================================================

// GenerateLayoutWithCacheInfo computes node positions for a graph and
// reports whether they were served from the cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, g *graph.Graph, opts Options) (layout.PositionMap, bool, error) {
	opts.SetLayoutDefaults()

	graphData, err := graph.MarshalModel(g.Export())
	if err != nil {
		return nil, false, fmt.Errorf("marshal graph: %w", err)
	}

	key := r.Keyer.LayoutKey(cache.Hash(graphData), opts.layoutKeyOpts())
	if !opts.Refresh {
		if data, found, gerr := r.Cache.Get(ctx, key); gerr == nil && found {
			var positions layout.PositionMap
			if uerr := json.Unmarshal(data, &positions); uerr == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return positions, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	positions, err := layout.Compute(g, opts.layoutOptions())
	if err != nil {
		return nil, false, err
	}

	if data, merr := json.Marshal(positions); merr == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return positions, false, nil
}

// GenerateLayout computes node positions for a graph.
func (r *Runner) GenerateLayout(ctx context.Context, g *graph.Graph, opts Options) (layout.PositionMap, error) {
	positions, _, err := r.GenerateLayoutWithCacheInfo(ctx, g, opts)
	return positions, err
}
