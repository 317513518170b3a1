package observability

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus implements every hook interface by recording Prometheus
// metrics in its own registry. One value serves a whole process:
//
//	m := observability.NewPrometheus()
//	observability.SetWalkHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//	defer m.WriteTextfile("/var/lib/node_exporter/depwalk.prom")
type Prometheus struct {
	registry *prometheus.Registry

	walks           *prometheus.CounterVec
	walkDuration    prometheus.Histogram
	walkNodes       prometheus.Gauge
	walkUnresolved  prometheus.Gauge
	resolves        *prometheus.CounterVec
	resolveDuration prometheus.Histogram

	cacheLookups *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpErrors   *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates the metrics and registers them in a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		walks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depwalk_walks_total",
				Help: "Number of graph walks by outcome.",
			},
			[]string{"outcome"},
		),
		walkDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depwalk_walk_duration_seconds",
				Help:    "Time taken to build a dependency graph.",
				Buckets: prometheus.DefBuckets,
			},
		),
		walkNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depwalk_walk_packages",
				Help: "Number of packages expanded in the last walk.",
			},
		),
		walkUnresolved: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "depwalk_walk_unresolved_packages",
				Help: "Number of packages that could not be resolved in the last walk.",
			},
		),
		resolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depwalk_resolve_total",
				Help: "Number of dependency source calls by outcome.",
			},
			[]string{"outcome"},
		),
		resolveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "depwalk_resolve_duration_seconds",
				Help:    "Time taken by a single dependency source call.",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depwalk_cache_lookups_total",
				Help: "Number of cache lookups by result.",
			},
			[]string{"type", "result"},
		),
		cacheBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depwalk_cache_written_bytes_total",
				Help: "Bytes written to the cache.",
			},
			[]string{"type"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depwalk_http_requests_total",
				Help: "Number of HTTP responses by host and status code.",
			},
			[]string{"host", "code"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depwalk_http_errors_total",
				Help: "Number of HTTP requests that failed without a response.",
			},
			[]string{"host"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "depwalk_http_request_duration_seconds",
				Help:    "Time taken by HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"host"},
		),
	}

	p.registry.MustRegister(
		p.walks,
		p.walkDuration,
		p.walkNodes,
		p.walkUnresolved,
		p.resolves,
		p.resolveDuration,
		p.cacheLookups,
		p.cacheBytes,
		p.httpRequests,
		p.httpErrors,
		p.httpDuration,
	)
	return p
}

// Registry returns the registry holding all metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// WriteTextfile writes the current metrics to path in the text exposition
// format read by the node exporter textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// cacheType reduces a cache namespace such as "nuget:https://..." to its
// registry kind so label cardinality stays bounded.
func cacheType(keyType string) string {
	kind, _, _ := strings.Cut(keyType, ":")
	return kind
}

// OnWalkStart implements WalkHooks.
func (p *Prometheus) OnWalkStart(context.Context, string, int) {}

// OnResolve implements WalkHooks.
func (p *Prometheus) OnResolve(_ context.Context, _ string, _, _ int, d time.Duration, err error) {
	p.resolves.WithLabelValues(outcome(err)).Inc()
	p.resolveDuration.Observe(d.Seconds())
}

// OnWalkComplete implements WalkHooks.
func (p *Prometheus) OnWalkComplete(_ context.Context, _ string, nodes, unresolved int, d time.Duration, err error) {
	p.walks.WithLabelValues(outcome(err)).Inc()
	p.walkDuration.Observe(d.Seconds())
	p.walkNodes.Set(float64(nodes))
	p.walkUnresolved.Set(float64(unresolved))
}

// OnCacheHit implements CacheHooks.
func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheLookups.WithLabelValues(cacheType(keyType), "hit").Inc()
}

// OnCacheMiss implements CacheHooks.
func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheLookups.WithLabelValues(cacheType(keyType), "miss").Inc()
}

// OnCacheSet implements CacheHooks.
func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheBytes.WithLabelValues(cacheType(keyType)).Add(float64(size))
}

// OnRequest implements HTTPHooks.
func (p *Prometheus) OnRequest(context.Context, string, string, string) {}

// OnResponse implements HTTPHooks.
func (p *Prometheus) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(host, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(host).Observe(d.Seconds())
}

// OnError implements HTTPHooks.
func (p *Prometheus) OnError(_ context.Context, _, host, _ string, _ error) {
	p.httpErrors.WithLabelValues(host).Inc()
}

var (
	_ WalkHooks  = (*Prometheus)(nil)
	_ CacheHooks = (*Prometheus)(nil)
	_ HTTPHooks  = (*Prometheus)(nil)
)
