// Package metrics holds the Prometheus collectors for inbound HTTP traffic
// and for calls made to the upstream APIs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fandomexplorer"

// Upstream call outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeHTTP      = "http_error"
	OutcomeLogical   = "logical_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
)

type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers all collectors on reg. A nil reg uses a fresh registry so
// repeated construction in tests never collides.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Calls made to upstream APIs, by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		UpstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream call latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"upstream"}),
		gatherer: reg,
	}
}

// ObserveUpstream records one upstream call. Safe on a nil receiver.
func (m *Metrics) ObserveUpstream(upstream, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(upstream, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(upstream).Observe(d.Seconds())
}

// Middleware counts and times every request by its matched route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
