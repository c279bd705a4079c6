// Package module wires pricing into the API
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/services/api/pricing/domain"
	pricinghttp "gymdesk/internal/services/api/pricing/http"
	pricingrepo "gymdesk/internal/services/api/pricing/repo"
	pricingsvc "gymdesk/internal/services/api/pricing/service"
)

// Ports exposes plan lookup to the payments module
type Ports struct {
	Pricing domain.ServicePort
}

// New builds the pricing module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("pricing", "/pricing", opts...)
	svc := pricingsvc.New(deps.PG, pricingrepo.NewPG())
	return modkit.NewBase(b, Ports{Pricing: svc}, func(r httpkit.Router) {
		pricinghttp.Register(r, svc)
	})
}
