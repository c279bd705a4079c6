// Package module wires the dashboard into the API
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/dashboard/domain"
	dashboardhttp "gymdesk/internal/services/api/dashboard/http"
	dashboardrepo "gymdesk/internal/services/api/dashboard/repo"
	dashboardsvc "gymdesk/internal/services/api/dashboard/service"
)

// Injected is what the dashboard consumes
type Injected struct {
	CheckIns domain.RecentSource
}

// Ports exposes the dashboard
type Ports struct {
	Dashboard domain.ServicePort
}

// New builds the dashboard module. It panics without the CheckIns port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("dashboard", "/dashboard", opts...)
	in := modkit.Injected[Injected](b)
	if in.CheckIns == nil {
		panic("dashboard module requires the CheckIns port (from checkins)")
	}

	svc := dashboardsvc.New(deps.PG, dashboardrepo.NewPG(), dashboardsvc.Options{
		Recent:   in.CheckIns,
		Location: deps.Location(),
	})
	return modkit.NewBase(b, Ports{Dashboard: svc}, func(r httpkit.Router) {
		dashboardhttp.Register(r, svc)
	})
}
