// Package module wires up the snapshots service as a modkit.Module
package module

import (
	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/platform/logger"

	"gymdesk/internal/services/snapshots/domain"
	"gymdesk/internal/services/snapshots/guardrails"
	"gymdesk/internal/services/snapshots/repo"
	"gymdesk/internal/services/snapshots/service"
)

// Ports exported by the snapshots module
type Ports struct {
	Runner domain.RunnerPort
}

// Module implements modkit.Module for snapshots
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs and wires the snapshots module using deps.Cfg
func New(deps modkit.Deps) *Module {
	return NewWith(deps, FromConfig(deps.Cfg))
}

// NewWith wires the module with explicit options
func NewWith(deps modkit.Deps, opts Options) *Module {
	lease := guardrails.NoLease(deps.PG)
	if opts.EnableLeases {
		lease = guardrails.MakeLease(deps.PG)
	}
	svc := service.New(deps.PG, repo.NewPG(), lease, service.Config{Location: deps.Location()})

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{Runner: svc}
	return m
}

// Scheduler builds the cron scheduler when CORE_SNAPSHOTS_SCHEDULE is on, nil otherwise
func (m *Module) Scheduler() (*service.Scheduler, error) {
	if !m.opts.Schedule {
		return nil, nil
	}
	return service.NewScheduler(m.ports.Runner, m.opts.Cron, m.deps.Location(), *logger.Named("snapshots"))
}

// Name returns the module name
func (m *Module) Name() string { return "snapshots" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module route prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op: snapshots have no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
