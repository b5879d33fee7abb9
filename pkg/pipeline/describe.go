package pipeline

import (
	"context"
	"os"

	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/errors"
	"github.com/mhagedorn/scenegraph/pkg/observability"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// ============================================================================
// Stage 1: describe
// ============================================================================

// DescribeWithCacheInfo returns the scene for the configured input and
// whether it was served from the cache. Scene-document input parses
// directly and never touches the cache.
func (r *Runner) DescribeWithCacheInfo(ctx context.Context, opts Options) (*scene.Scene, bool, error) {
	if err := opts.ValidateForDescribe(); err != nil {
		return nil, false, err
	}

	if opts.SceneDoc != "" {
		sc, err := scene.Parse([]byte(opts.SceneDoc))
		if err != nil {
			return nil, false, err
		}
		return sc, false, nil
	}

	data := opts.ImageData
	if len(data) == 0 {
		var err error
		data, err = os.ReadFile(opts.Image)
		if err != nil {
			return nil, false, errors.Wrap(errors.ErrCodeInvalidPath, err, "read image %s", opts.Image)
		}
	}

	key := r.Keyer.SceneKey(cache.Hash(data), opts.sceneKeyOpts())
	if !opts.Refresh {
		if cached, found, err := r.Cache.Get(ctx, key); err == nil && found {
			if sc, perr := scene.Parse(cached); perr == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return sc, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "scene")

	if r.Describer == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "image input requires a configured describer")
	}
	sc, err := r.Describer.Describe(ctx, opts.imageName(), data)
	if err != nil {
		return nil, false, err
	}

	if out, merr := scene.Marshal(sc); merr == nil {
		_ = r.Cache.Set(ctx, key, out, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(out))
	}
	return sc, false, nil
}

// Describe returns the scene for the configured input.
func (r *Runner) Describe(ctx context.Context, opts Options) (*scene.Scene, error) {
	sc, _, err := r.DescribeWithCacheInfo(ctx, opts)
	return sc, err
}
