// Package server exposes the visualization pipeline over HTTP.
//
// Routes live under /api/v1: render runs the full pipeline, describe
// runs only the scene-description stage, and results serves previously
// persisted runs. Every request carries an X-Request-ID (client ids
// are honored) and is reported to the observability HTTP hooks.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mhagedorn/scenegraph/pkg/observability"
	"github.com/mhagedorn/scenegraph/pkg/pipeline"
	"github.com/mhagedorn/scenegraph/pkg/store"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// RequestIDHeader carries the request id to and from clients.
	RequestIDHeader = "X-Request-ID"

	// maxBodyBytes caps request bodies. Image uploads dominate the
	// payload sizes.
	maxBodyBytes = 32 << 20

	// shutdownGrace bounds in-flight request draining on shutdown.
	shutdownGrace = 10 * time.Second
)

// Server handles API requests by delegating to a pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists successful render results for later retrieval.
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithTimeout bounds each pipeline run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// New creates a server around a pipeline runner. A nil runner gets a
// cacheless default; a nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{runner: runner, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/describe", s.handleDescribe)
		r.Get("/results", s.handleListResults)
		r.Get("/results/{id}", s.handleGetResult)
		r.Delete("/results/{id}", s.handleDeleteResult)
	})
	return r
}

// Start serves on addr until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("api server listening", "addr", addr)

	select {
	case err := <-errCh:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.logger.Info("api server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// ============================================================================
// Middleware
// ============================================================================

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID extracts the request id from a request context.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags each request with a uuid. Client-supplied ids are
// kept so callers can correlate across systems.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests writes one line per request and feeds the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.Host, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start)

		hooks.OnResponse(r.Context(), r.Method, r.Host, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration,
			"request_id", RequestID(r.Context()))
	})
}
