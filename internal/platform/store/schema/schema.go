// Package schema applies the embedded postgres migrations in file order and
// records each applied version in schema_migrations
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
)

//go:embed migrations/*.sql
var files embed.FS

const ensureTable = `
create table if not exists schema_migrations (
    version    text primary key,
    applied_at timestamptz not null default now()
)`

// Migration is one embedded sql file
type Migration struct {
	Version string
	SQL     string
}

// Migrations lists the embedded migrations sorted by version
func Migrations() ([]Migration, error) {
	return load(files)
}

func load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := fs.ReadFile(fsys, n)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", n, err)
		}
		out = append(out, Migration{
			Version: strings.TrimSuffix(path.Base(n), ".sql"),
			SQL:     string(b),
		})
	}
	return out, nil
}

// Apply runs every pending migration, each in its own transaction.
// It returns the versions applied by this call
func Apply(ctx context.Context, db store.TxRunner) ([]string, error) {
	ms, err := Migrations()
	if err != nil {
		return nil, err
	}
	return apply(ctx, db, ms)
}

func apply(ctx context.Context, db store.TxRunner, ms []Migration) ([]string, error) {
	log := logger.C(ctx).With().Str("mod", "schema").Logger()

	if _, err := db.Exec(ctx, ensureTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	done, err := store.Many(ctx, db, func(r store.Row) (string, error) {
		var v string
		err := r.Scan(&v)
		return v, err
	}, `select version from schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied: %w", err)
	}
	seen := make(map[string]bool, len(done))
	for _, v := range done {
		seen[v] = true
	}

	var applied []string
	for _, m := range ms {
		if seen[m.Version] {
			continue
		}
		err := db.Tx(ctx, func(q store.RowQuerier) error {
			if _, err := q.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := q.Exec(ctx, `insert into schema_migrations (version) values ($1)`, m.Version)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.Version, err)
		}
		log.Info().Str("version", m.Version).Msg("migration applied")
		applied = append(applied, m.Version)
	}
	return applied, nil
}
