package pipeline

import (
	"context"
	"fmt"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/observability"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// ============================================================================
// Stage 2: build
// ============================================================================

// BuildWithCacheInfo builds the relation graph for a scene and reports
// whether it was served from the cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) (*graph.Graph, bool, error) {
	sceneData, err := scene.Marshal(sc)
	if err != nil {
		return nil, false, fmt.Errorf("marshal scene: %w", err)
	}

	key := r.Keyer.GraphKey(cache.Hash(sceneData))
	if !opts.Refresh {
		if data, found, gerr := r.Cache.Get(ctx, key); gerr == nil && found {
			if m, uerr := graph.UnmarshalModel(data); uerr == nil {
				if g, ferr := graph.FromModel(m); ferr == nil {
					observability.Cache().OnCacheHit(ctx, "graph")
					return g, true, nil
				}
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g, err := graph.Build(sc)
	if err != nil {
		return nil, false, err
	}

	if data, merr := graph.MarshalModel(g.Export()); merr == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return g, false, nil
}

// Build builds the relation graph for a scene.
func (r *Runner) Build(ctx context.Context, sc *scene.Scene, opts Options) (*graph.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, sc, opts)
	return g, err
}
