// @title         Gymdesk API
// @version       0.1.0
// @description   Front desk, membership and reporting endpoints for a single gym
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymdesk/internal/platform/config"
	"gymdesk/internal/platform/logger"
	phttp "gymdesk/internal/platform/net/http"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/platform/store/schema"

	"gymdesk/internal/services/api"
)

func main() {
	// .env before anything reads the environment
	if _, err := config.LoadDotEnv(); err != nil {
		logger.Get().Warn().Err(err).Msg("dotenv not loaded")
	}

	root := config.New()
	core := root.Prefix("CORE_")
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// open the platform store (postgres + optional CH mirror)
	st, err := store.Open(ctx, store.ConfigFrom(root, "api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if apiCfg.MayBool("MIGRATE", true) {
		applied, err := schema.Apply(ctx, st.PG)
		if err != nil {
			l.Panic().Err(err).Msg("schema apply failed")
		}
		l.Info().Strs("applied", applied).Msg("schema up to date")
	}

	// http server (CORE_API_PORT, CORE_API_*_TIMEOUT, CORE_API_SHUTDOWN_GRACE)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	app := api.Mount(
		srv.Router(),
		api.Options{
			Config:         core,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	if err := app.EnsureOwner(ctx); err != nil {
		l.Panic().Err(err).Msg("owner bootstrap failed")
	}

	sched, err := app.Scheduler()
	if err != nil {
		l.Panic().Err(err).Msg("bad CORE_SNAPSHOTS_CRON")
	}
	if sched != nil {
		sched.Start()
	}

	// Run returns once ctx is cancelled and in flight requests drained
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	if sched != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		sched.Stop(stopCtx)
	}
}
