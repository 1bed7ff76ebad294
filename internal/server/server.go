// Package server exposes integration and splitting over HTTP.
//
// # Routes
//
//	POST /v1/integrate        problem JSON in, solution JSON out
//	POST /v1/split/interval   {"a": {...}, "b": {...}} intervals
//	POST /v1/split/box        {"a": {...}, "b": {...}} boxes
//	GET  /healthz             liveness probe
//	GET  /metrics             Prometheus exposition
//
// The integrate body uses the problem file format of pkg/io. Setting the
// query parameter refresh=true bypasses the cache lookup.
//
// # Errors
//
// Failures are returned as {"code": "...", "message": "..."} with a status
// derived from the error code: broken geometric preconditions and cell
// limit overruns are 422, malformed requests are 400, oversized bodies are
// 413 and everything else is 500.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/hypercuboid/pkg/pipeline"
)

// Config holds server settings. Zero values select the defaults below.
type Config struct {
	Addr         string        // listen address, default ":8080"
	ReadTimeout  time.Duration // default 30s
	WriteTimeout time.Duration // default 2m
	MaxBodyBytes int64         // request body limit, default 16 MiB

	// Options are applied to every integration before the request's own
	// values. Only Mode and MaxCells are used.
	Options pipeline.Options

	// Gatherer backs /metrics, default prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 2 * time.Minute
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 16 << 20
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
}

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. The runner is shared by all requests and must not
// be closed while the server is running.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/integrate", s.handleIntegrate)
		r.Post("/split/interval", s.handleSplitInterval)
		r.Post("/split/box", s.handleSplitBox)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
