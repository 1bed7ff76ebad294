package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// PrometheusHooks exports sweep, cache and HTTP events as Prometheus
// metrics. It implements [SweepHooks], [CacheHooks] and [HTTPHooks].
type PrometheusHooks struct {
	sweepTotal    *prometheus.CounterVec
	sweepDuration *prometheus.HistogramVec
	sweepCells    prometheus.Histogram
	sweepBoxes    prometheus.Histogram

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// Registering twice on the same registerer panics, as with promauto.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		sweepTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hypercuboid_sweep_total",
			Help: "Total sweeps by mode and result code",
		}, []string{"mode", "result"}),
		sweepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hypercuboid_sweep_duration_seconds",
			Help:    "Sweep duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"mode"}),
		sweepCells: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hypercuboid_sweep_cells",
			Help:    "Number of output cells per successful sweep",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		sweepBoxes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "hypercuboid_sweep_boxes",
			Help:    "Number of input boxes per sweep",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hypercuboid_cache_hits_total",
			Help: "Total cache hits by key type",
		}, []string{"key_type"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hypercuboid_cache_misses_total",
			Help: "Total cache misses by key type",
		}, []string{"key_type"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hypercuboid_cache_written_bytes_total",
			Help: "Total bytes written to the cache by key type",
		}, []string{"key_type"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hypercuboid_http_requests_total",
			Help: "Total HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hypercuboid_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (h *PrometheusHooks) OnSweepStart(_ context.Context, boxes, _ int, _ string) {
	h.sweepBoxes.Observe(float64(boxes))
}

func (h *PrometheusHooks) OnSweepComplete(_ context.Context, mode string, cells int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = string(errors.GetCode(err))
		if result == "" {
			result = "error"
		}
	} else {
		h.sweepCells.Observe(float64(cells))
	}
	h.sweepTotal.WithLabelValues(mode, result).Inc()
	h.sweepDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheHits.WithLabelValues(keyType).Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheMisses.WithLabelValues(keyType).Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest does nothing; requests are counted with their status on response.
func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ SweepHooks = (*PrometheusHooks)(nil)
	_ CacheHooks = (*PrometheusHooks)(nil)
	_ HTTPHooks  = (*PrometheusHooks)(nil)
)
