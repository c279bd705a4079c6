// Package module wires staff accounts and sign in into the API. Staff and
// auth are two modules over one service: staff is owner only, auth is public
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/platform/net/middleware"
	"gymdesk/internal/services/api/staff/domain"
	staffhttp "gymdesk/internal/services/api/staff/http"
	staffrepo "gymdesk/internal/services/api/staff/repo"
	staffsvc "gymdesk/internal/services/api/staff/service"
)

// Ports exposes the staff service and the bearer port protected routes mount behind
type Ports struct {
	Staff domain.ServicePort
	Auth  middleware.AuthPort
}

// Injected is what the auth module takes from the staff module
type Injected Ports

// NewService builds the staff service from options
func NewService(deps modkit.Deps, o Options) *staffsvc.Svc {
	return staffsvc.New(deps.PG, staffrepo.NewPG(), staffsvc.Options{
		SessionTTL: o.SessionTTL,
		Cost:       o.BcryptCost,
	})
}

// New builds the staff module
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("staff", "/staff", opts...)
	svc := NewService(deps, o)
	return modkit.NewBase(b, Ports{Staff: svc, Auth: NewAuthPort(svc)}, func(r httpkit.Router) {
		staffhttp.RegisterStaff(r, svc)
	})
}

// NewAuth builds the sign in module over the staff module's ports
func NewAuth(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("auth", "/auth", opts...)
	in := modkit.Injected[Injected](b)
	if in.Staff == nil || in.Auth == nil {
		panic("auth module requires the Staff and Auth ports (from staff)")
	}
	return modkit.NewBase(b, nil, func(r httpkit.Router) {
		staffhttp.RegisterAuth(r, in.Staff, in.Auth)
	})
}
