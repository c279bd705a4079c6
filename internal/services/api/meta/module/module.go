// Package module mounts the meta endpoints: liveness, readiness, build and clock
package module

import (
	"context"
	"time"

	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/modkit/module"

	metahttp "gymdesk/internal/services/api/meta/http"
)

// ServiceName is reported by health and service info
const ServiceName = "gymdesk-api"

// New returns the meta module. It exposes no ports
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("meta", "/meta", opts...)
	d := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   time.Now(),
		Location:    deps.Location(),
		Modules:     module.Names,
	}
	d.Checks = []metahttp.Check{
		{Name: "pg", Ping: pinger(deps.PG)},
		// clickhouse is optional; without it readiness reports degraded
		{Name: "ch", Ping: pinger(deps.CH)},
	}
	return modkit.NewBase(b, nil, func(r httpkit.Router) { metahttp.Register(r, d) })
}

// pinger returns v's Ping, or nil when v is unset or cannot ping
func pinger(v any) func(context.Context) error {
	if p, ok := v.(interface{ Ping(context.Context) error }); ok && p != nil {
		return p.Ping
	}
	return nil
}
