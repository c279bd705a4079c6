// Package api provides the HTTP API for the application
package api

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/logger"
	phttp "gymdesk/internal/platform/net/http"
	"gymdesk/internal/platform/net/middleware"
	"gymdesk/internal/platform/store"

	"gymdesk/internal/modkit"
	"gymdesk/internal/modkit/httpkit"
	"gymdesk/internal/modkit/module"
	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/modkit/swaggerkit"

	"gymdesk/internal/services/events"
	snapmod "gymdesk/internal/services/snapshots/module"
	snapsvc "gymdesk/internal/services/snapshots/service"

	checkinsmod "gymdesk/internal/services/api/checkins/module"
	dashboardmod "gymdesk/internal/services/api/dashboard/module"
	membersmod "gymdesk/internal/services/api/members/module"
	metamod "gymdesk/internal/services/api/meta/module"
	metricsmod "gymdesk/internal/services/api/metrics/module"
	paymentsmod "gymdesk/internal/services/api/payments/module"
	pricingmod "gymdesk/internal/services/api/pricing/module"
	staffdomain "gymdesk/internal/services/api/staff/domain"
	staffmod "gymdesk/internal/services/api/staff/module"
)

// MetricsNamespace prefixes every Prometheus series the API exports
const MetricsNamespace = "gymdesk"

// Options are the API options
type Options struct {
	// Config is the CORE_ namespace shared by every module
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool

	// Registry collects the HTTP and desk activity series; nil builds a fresh one
	Registry *prometheus.Registry
}

// App is what the process needs after routes are mounted
type App struct {
	Staff     staffdomain.ServicePort
	Snapshots *snapmod.Module

	owner staffmod.Options
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *App {
	reg := opt.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if opt.EnableMetrics {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		r.Use(middleware.NewInstruments(reg, MetricsNamespace).Middleware)
	}

	// shared deps for modules; every transaction carries the acting staff id
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  repokit.WithBeginHooks(opt.Store.PG, repokit.ActorHook),
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	sink := events.Sink(events.FromStore(opt.Store))
	if opt.EnableMetrics {
		sink = events.Fanout{sink, events.NewPromSink(reg, MetricsNamespace)}
	}

	// staff first: its Auth port guards everything else
	staffOpts := staffmod.FromConfig(deps.Cfg)
	staff := staffmod.New(deps, staffOpts)
	sp := module.MustPortsOf[staffmod.Ports](staff)
	auth := staffmod.NewAuth(deps, modkit.WithPorts(staffmod.Injected{Staff: sp.Staff, Auth: sp.Auth}))

	members := membersmod.New(deps)
	checkins := checkinsmod.New(deps, modkit.WithPorts(checkinsmod.Injected{
		Members: module.MustPortsOf[membersmod.Ports](members).Members,
		Events:  sink,
	}))
	pricing := pricingmod.New(deps)
	payments := paymentsmod.New(deps, modkit.WithPorts(paymentsmod.Injected{
		Plans:  module.MustPortsOf[pricingmod.Ports](pricing).Pricing,
		Events: sink,
	}))
	dashboard := dashboardmod.New(deps, modkit.WithPorts(dashboardmod.Injected{
		CheckIns: module.MustPortsOf[checkinsmod.Ports](checkins).CheckIns,
	}))
	charts := metricsmod.New(deps)
	snapshots := snapmod.New(deps)

	public := []module.Module{
		metamod.New(deps),
		auth,
	}
	protected := []module.Module{
		staff,
		members,
		checkins,
		pricing,
		payments,
		dashboard,
		charts,
	}

	phttp.MountMetrics(r, "/metrics", opt.EnableMetrics, reg)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger, swaggerkit.FromConfig(opt.Config))
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		module.Register(snapshots.Name(), snapshots.Ports())
		for _, m := range public {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
		httpkit.Protected(api, sp.Auth, func(pr httpkit.Router) {
			for _, m := range protected {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(pr)
			}
		})
	})

	return &App{Staff: sp.Staff, Snapshots: snapshots, owner: staffOpts}
}

// EnsureOwner creates the configured owner account when none exists yet.
// It does nothing when CORE_OWNER_USERNAME or CORE_OWNER_PASSWORD is unset
func (a *App) EnsureOwner(ctx context.Context) error {
	if !a.owner.WantsOwner() {
		return nil
	}
	s, created, err := a.Staff.EnsureOwner(ctx, a.owner.Owner)
	if err != nil {
		return err
	}
	l := logger.C(ctx)
	if created {
		l.Info().Str("username", s.Username).Msg("owner account created")
	} else {
		l.Debug().Msg("owner account already present")
	}
	return nil
}

// Scheduler returns the snapshot scheduler when CORE_SNAPSHOTS_SCHEDULE is on
func (a *App) Scheduler() (*snapsvc.Scheduler, error) { return a.Snapshots.Scheduler() }
