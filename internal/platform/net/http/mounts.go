package http

import (
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountMetrics serves g in the Prometheus text format at path
func MountMetrics(r Router, path string, enabled bool, g prometheus.Gatherer) {
	if !enabled || g == nil {
		return
	}
	r.Handle(path, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}

// MountProfiler serves pprof under prefix, e.g. /debug/pprof/
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	h := http.StripPrefix(prefix, chimw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
