package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Instruments are the HTTP request collectors
type Instruments struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewInstruments registers the request collectors on reg under namespace
func NewInstruments(reg prometheus.Registerer, namespace string) *Instruments {
	i := &Instruments{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(i.requests, i.latency, i.inflight)
	return i
}

// Middleware records every request. Routes are labelled by chi pattern so ids stay out of the label set
func (i *Instruments) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i.inflight.Inc()
		defer i.inflight.Dec()

		sw := capture(w)
		start := time.Now()
		next.ServeHTTP(sw, r)

		route := routeOf(r)
		i.requests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
		i.latency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
