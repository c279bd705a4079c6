// Package module wires payments into the API
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/payments/domain"
	paymentshttp "gymdesk/internal/services/api/payments/http"
	paymentsrepo "gymdesk/internal/services/api/payments/repo"
	paymentssvc "gymdesk/internal/services/api/payments/service"
	"gymdesk/internal/services/events"
)

// Injected is what payments consume. Plans is required; Events may be nil
type Injected struct {
	Plans  domain.PlanLookup
	Events events.Sink
}

// Ports exposes payments
type Ports struct {
	Payments domain.ServicePort
}

// New builds the payments module. It panics without the Plans port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("payments", "/payments", opts...)
	in := modkit.Injected[Injected](b)
	if in.Plans == nil {
		panic("payments module requires the Plans port (from pricing)")
	}

	svc := paymentssvc.New(deps.PG, paymentsrepo.NewPG(), paymentssvc.Options{
		Plans:    in.Plans,
		Events:   in.Events,
		Location: deps.Location(),
	})
	return modkit.NewBase(b, Ports{Payments: svc}, func(r httpkit.Router) {
		paymentshttp.Register(r, svc)
	})
}
