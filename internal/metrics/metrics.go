// Package metrics provides Prometheus metrics for the dirview server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one server instance.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	resolutionsTotal    *prometheus.CounterVec
	entriesListed       prometheus.Counter
	bytesServed         prometheus.Counter
	watchEventsTotal    *prometheus.CounterVec
	eventClients        prometheus.Gauge
}

// Kinds of resolution outcome recorded by RecordResolution.
const (
	KindDirectory = "directory"
	KindFile      = "file"
	KindNotFound  = "not_found"
	KindBadRoot   = "bad_root"
	KindFailure   = "failure"
)

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dirview_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dirview_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		resolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dirview_resolutions_total",
				Help: "Resolved request paths by outcome",
			},
			[]string{"kind"},
		),
		entriesListed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dirview_entries_listed_total",
				Help: "Directory entries returned in listings",
			},
		),
		bytesServed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "dirview_file_bytes_served_total",
				Help: "Bytes of file content returned",
			},
		),
		watchEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dirview_watch_events_total",
				Help: "Filesystem change events seen under the root",
			},
			[]string{"event"},
		),
		eventClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "dirview_event_clients",
				Help: "Connected change-event websocket clients",
			},
		),
	}

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.resolutionsTotal,
		m.entriesListed,
		m.bytesServed,
		m.watchEventsTotal,
		m.eventClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency.
// Paths are not used as labels: every request path is a distinct filesystem path.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// RecordResolution records the outcome of one resolved path.
func (m *Metrics) RecordResolution(kind string) {
	m.resolutionsTotal.WithLabelValues(kind).Inc()
}

// RecordListing records the number of entries returned by a listing.
func (m *Metrics) RecordListing(entries int) {
	m.RecordResolution(KindDirectory)
	m.entriesListed.Add(float64(entries))
}

// RecordFile records a file read of n bytes.
func (m *Metrics) RecordFile(n int) {
	m.RecordResolution(KindFile)
	m.bytesServed.Add(float64(n))
}

// RecordWatchEvent counts a watcher event.
func (m *Metrics) RecordWatchEvent(event string) {
	m.watchEventsTotal.WithLabelValues(event).Inc()
}

// SetEventClients sets the connected websocket client count.
func (m *Metrics) SetEventClients(n int) {
	m.eventClients.Set(float64(n))
}
