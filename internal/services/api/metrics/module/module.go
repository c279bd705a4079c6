// Package module wires the chart endpoints into the API
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/metrics/domain"
	metricshttp "gymdesk/internal/services/api/metrics/http"
	metricsrepo "gymdesk/internal/services/api/metrics/repo"
	metricssvc "gymdesk/internal/services/api/metrics/service"
)

// Ports exposes the chart service
type Ports struct {
	Charts domain.ServicePort
}

// New builds the metrics module. Buckets are cut in CORE_TIMEZONE
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("metrics", "/metrics", opts...)
	svc := metricssvc.New(deps.PG, metricsrepo.NewPG(), metricssvc.WithLocation(deps.Location()))
	return modkit.NewBase(b, Ports{Charts: svc}, func(r httpkit.Router) {
		metricshttp.Register(r, svc)
	})
}
