package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	chx "gymdesk/internal/platform/store/ch"
	"gymdesk/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
)

// pingBackoff paces the boot pings: 150ms doubling up to 2s, at most tries attempts
func pingBackoff(ctx context.Context, tries int) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 150 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(tries-1)), ctx)
}

// openPG opens the pool and hands it out only once a ping succeeds. The
// database often starts alongside the API, so pings are retried
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer)
	if err != nil {
		return nil, err
	}

	tries := cfg.PG.ConnectRetries
	if tries <= 0 {
		tries = defaultConnectRetries
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(pctx)
	}
	retrying := func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Dur("retry_in", wait).Msg("postgres not ready")
	}
	if err := backoff.RetryNotify(ping, pingBackoff(ctx, tries), retrying); err != nil {
		p.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", tries, err)
	}
	return newPGAdapter(p), nil
}

// dialCH opens the clickhouse client; tests replace it
var dialCH = func(ctx context.Context, cfg chx.Config) (chClient, error) {
	return chx.Open(ctx, cfg)
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := dialCH(ctx, chx.Config{
		URL:         cfg.CH.URL,
		Role:        cfg.AppName,
		DialTimeout: cfg.CH.DialTimeout,
		Compression: cfg.CH.Compression,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse: %w", err)
	}
	s.Log.Info().Str("role", cfg.AppName).Msg("clickhouse connected")
	return newCHAdapter(c), nil
}
