package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hypercuboid/pkg/observability"
)

const unmatchedRoute = "unmatched"

// observe reports every request to the HTTP hooks and logs it. Routes are
// labelled by their pattern so path parameters do not explode metric
// cardinality.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := s.routePattern(r)
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)

		logger := s.logger.With("method", r.Method, "route", route, "status", status, "took", d.Round(time.Microsecond))
		if id := middleware.GetReqID(r.Context()); id != "" {
			logger = logger.With("request", id)
		}
		switch {
		case status >= 500:
			logger.Error("request failed")
		case route == "/healthz" || route == "/metrics":
			logger.Debug("request")
		default:
			logger.Info("request")
		}
	})
}

func (s *Server) routePattern(r *http.Request) string {
	rctx := chi.NewRouteContext()
	if s.router.Match(rctx, r.Method, r.URL.Path) {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

// limitBody caps request bodies at the configured size.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
