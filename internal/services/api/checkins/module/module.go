// Package module wires check-ins into the API
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/checkins/domain"
	checkinshttp "gymdesk/internal/services/api/checkins/http"
	checkinsrepo "gymdesk/internal/services/api/checkins/repo"
	checkinssvc "gymdesk/internal/services/api/checkins/service"
	"gymdesk/internal/services/events"
)

// Injected is what check-ins consume. Members is required; Events may be nil
type Injected struct {
	Members domain.MemberSearch
	Events  events.Sink
}

// Ports exposes check-ins to the dashboard
type Ports struct {
	CheckIns domain.ServicePort
}

// New builds the check-ins module. It panics without the Members port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("checkins", "/checkins", opts...)
	in := modkit.Injected[Injected](b)
	if in.Members == nil {
		panic("checkins module requires the Members port (from members)")
	}

	svc := checkinssvc.New(deps.PG, checkinsrepo.NewPG(), checkinssvc.Options{
		Members:  in.Members,
		Events:   in.Events,
		Location: deps.Location(),
	})
	return modkit.NewBase(b, Ports{CheckIns: svc}, func(r httpkit.Router) {
		checkinshttp.Register(r, svc)
	})
}
