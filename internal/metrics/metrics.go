// internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "degen"

// Metrics holds every collector degen exports. Each instance owns its registry
// so tests and multiple servers in one process do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	// Designs counts finished designs. Labels: outcome, source (engine, memory, disk).
	Designs *prometheus.CounterVec

	// DesignSeconds measures engine time per design. Labels: outcome.
	DesignSeconds *prometheus.HistogramVec

	// SeedsTried observes how many seeds a search evaluated.
	SeedsTried prometheus.Histogram

	// InFlight is the number of engine searches currently running.
	InFlight prometheus.Gauge

	// Requests counts HTTP requests. Labels: route, code.
	Requests *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Designs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "designs_total",
			Help: "Finished designs by outcome and result source.",
		}, []string{"outcome", "source"}),
		DesignSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "design_duration_seconds",
			Help:    "Engine search time per design.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"outcome"}),
		SeedsTried: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "design_seeds_tried",
			Help:    "Seeds evaluated per search.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200},
		}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "designs_in_flight",
			Help: "Engine searches currently running.",
		}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
