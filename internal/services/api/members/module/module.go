// Package module wires members into the API
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/members/domain"
	membershttp "gymdesk/internal/services/api/members/http"
	membersrepo "gymdesk/internal/services/api/members/repo"
	memberssvc "gymdesk/internal/services/api/members/service"
)

// Ports exposes member lookup and search to the check-in module
type Ports struct {
	Members domain.ServicePort
}

// New builds the members module. Statuses are computed against today in CORE_TIMEZONE
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("members", "/members", opts...)
	svc := memberssvc.New(deps.PG, membersrepo.NewPG(), memberssvc.WithLocation(deps.Location()))
	return modkit.NewBase(b, Ports{Members: svc}, func(r httpkit.Router) {
		membershttp.Register(r, svc)
	})
}
