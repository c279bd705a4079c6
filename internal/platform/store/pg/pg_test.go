package pg

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_AppliesConfigToPool(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{}
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return fake, nil
	})

	p, err := Open(context.Background(), Config{
		URL:      "postgres://desk:desk@db:5432/gymdesk?sslmode=disable",
		MaxConns: 6,
		SlowMs:   250,
		AppName:  "snapshots",
	}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Pool != fake || p.SlowMs != 250 {
		t.Fatalf("unexpected client %+v", p)
	}
	if seen.MaxConns != 6 {
		t.Fatalf("MaxConns got %d", seen.MaxConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "gymdesk-snapshots" {
		t.Fatalf("application_name got %q", got)
	}
}

func TestOpen_PoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("too many clients")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@h/db"}, nil); err == nil {
		t.Fatalf("expected pool error")
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()
	var p *PG
	p.Close()
	(&PG{}).Close()
}
