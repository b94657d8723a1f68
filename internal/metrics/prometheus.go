// Package metrics exposes Prometheus collectors for the HTTP API and the
// catalog.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Prometheus struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	records  prometheus.Gauge
}

// NewPrometheus registers the collectors on registerer, falling back to the
// default registry when nil.
func NewPrometheus(registerer prometheus.Registerer) *Prometheus {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &Prometheus{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "toolshelf_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "toolshelf_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		records: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "toolshelf_catalog_records",
				Help: "Number of records in the catalog as of the last read or write",
			},
		),
	}
}

// ObserveRequest records one finished HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func (p *Prometheus) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRecords sets the catalog size gauge.
func (p *Prometheus) ObserveRecords(n int) {
	p.records.Set(float64(n))
}
