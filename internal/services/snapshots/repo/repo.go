// Package repo stores active member snapshots in Postgres
package repo

import (
	"context"
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/snapshots/domain"
)

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements domain.StorageRepo
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

func day(t time.Time) string { return t.Format(time.DateOnly) }

func (r *queries) ActiveOn(ctx context.Context, d time.Time) (int, error) {
	return store.Scalar[int](ctx, r.q, `
select count(*)::int
from members
where not is_deleted
  and is_active
  and start_date <= $1::text::date
  and end_date >= $1::text::date`, day(d))
}

// Upsert relies on xmax being zero only for freshly inserted tuples
func (r *queries) Upsert(ctx context.Context, d time.Time, count int) (domain.Captured, error) {
	return store.One(ctx, r.q, func(row store.Row) (domain.Captured, error) {
		var c domain.Captured
		err := row.Scan(&c.Date, &c.ActiveCount, &c.CreatedAt, &c.Created)
		return c, err
	}, `
insert into active_member_snapshots (date, active_count)
values ($1::text::date, $2)
on conflict (date) do update set active_count = excluded.active_count
returning date, active_count, created_at, (xmax = 0)`, day(d), count)
}

func (r *queries) Recent(ctx context.Context, n int) ([]domain.Snapshot, error) {
	if n <= 0 {
		n = 1
	}
	return store.Many(ctx, r.q, func(row store.Row) (domain.Snapshot, error) {
		var s domain.Snapshot
		err := row.Scan(&s.Date, &s.ActiveCount, &s.CreatedAt)
		return s, err
	}, `
select date, active_count, created_at
from active_member_snapshots
order by date desc
limit $1`, n)
}
