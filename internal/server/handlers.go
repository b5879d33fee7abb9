package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mhagedorn/scenegraph/pkg/buildinfo"
	"github.com/mhagedorn/scenegraph/pkg/cache"
	"github.com/mhagedorn/scenegraph/pkg/errors"
	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/layout"
	"github.com/mhagedorn/scenegraph/pkg/pipeline"
	"github.com/mhagedorn/scenegraph/pkg/scene"
	"github.com/mhagedorn/scenegraph/pkg/store"
)

// ============================================================================
// Request and response shapes
// ============================================================================

// RenderResponse is the reply to POST /api/v1/render. Artifact bytes
// are base64 in JSON.
type RenderResponse struct {
	ID        string             `json:"id,omitempty"`
	SceneHash string             `json:"scene_hash"`
	GraphHash string             `json:"graph_hash"`
	Scene     *scene.Scene       `json:"scene,omitempty"`
	Graph     *graph.Model       `json:"graph,omitempty"`
	Positions layout.PositionMap `json:"positions,omitempty"`
	Artifacts map[string][]byte  `json:"artifacts"`
	Stats     pipeline.Stats     `json:"stats"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

// DescribeResponse is the reply to POST /api/v1/describe.
type DescribeResponse struct {
	Scene     *scene.Scene `json:"scene"`
	SceneHash string       `json:"scene_hash"`
	Cached    bool         `json:"cached"`
}

// ResultSummary is one row of GET /api/v1/results.
type ResultSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Image     string    `json:"image,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Format    string    `json:"format,omitempty"`
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRender runs the full pipeline for the posted options and, when
// a store is configured, persists the result.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decodeJSON(w, r, &opts) {
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx, cancel := s.runContext(r)
	defer cancel()

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	model := result.Graph.Export()
	resp := RenderResponse{
		SceneHash: result.SceneHash,
		GraphHash: result.GraphHash,
		Scene:     result.Scene,
		Graph:     &model,
		Positions: result.Positions,
		Artifacts: result.Artifacts,
		Stats:     result.Stats,
		CacheInfo: result.CacheInfo,
	}
	resp.ID = s.persist(ctx, result, opts)
	s.respondJSON(w, http.StatusOK, resp)
}

// handleDescribe runs only the scene-description stage.
func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decodeJSON(w, r, &opts) {
		return
	}

	ctx, cancel := s.runContext(r)
	defer cancel()

	sc, cached, err := s.runner.DescribeWithCacheInfo(ctx, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data, err := scene.Marshal(sc)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, DescribeResponse{
		Scene:     sc,
		SceneHash: cache.Hash(data),
		Cached:    cached,
	})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeUnsupported, "result store not configured"))
		return
	}

	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeUnsupported, "result store not configured"))
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.respondError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	summaries := make([]ResultSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, ResultSummary{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			Image:     rec.Image,
			Mode:      rec.Mode,
			Format:    rec.Format,
		})
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeUnsupported, "result store not configured"))
		return
	}

	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Helpers
// ============================================================================

// runContext bounds a pipeline run by the configured timeout.
func (s *Server) runContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return r.Context(), func() {}
	}
	return context.WithTimeout(r.Context(), s.timeout)
}

// persist saves the run when a store is configured. Save failures are
// logged, not surfaced; the render itself succeeded.
func (s *Server) persist(ctx context.Context, result *pipeline.Result, opts pipeline.Options) string {
	if s.store == nil {
		return ""
	}

	rec := store.NewResult()
	rec.Image = result.Scene.ImageName
	rec.Mode = opts.Mode
	rec.Scene = result.Scene
	model := result.Graph.Export()
	rec.Graph = &model
	rec.Positions = result.Positions
	if len(opts.Formats) > 0 {
		rec.Format = opts.Formats[0]
		rec.Artifact = result.Artifacts[rec.Format]
	}

	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.Error("persist result", "id", rec.ID, "err", err)
		return ""
	}
	return rec.ID
}
