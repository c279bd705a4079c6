// Package repo provides the dashboard aggregate queries
package repo

import (
	"context"
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/dashboard/domain"
)

// Visits is the check-in tally for one day
type Visits struct {
	Members int
	Total   int
	Open    int
}

// Repo is the read surface behind the dashboard. Days are local calendar
// dates; instant ranges are half open
type Repo interface {
	Visits(ctx context.Context, day time.Time) (Visits, error)
	Visitors(ctx context.Context, from, to time.Time) (int, error)
	Revenue(ctx context.Context, lo, hi time.Time) (float64, error)
	NewMembers(ctx context.Context, lo, hi time.Time) (int, error)
	ActiveMembers(ctx context.Context) (int, error)
	Expiring(ctx context.Context, from, to time.Time) ([]domain.Expiring, error)
	Hours(ctx context.Context, day time.Time, tz string) ([]domain.HourCount, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func day(t time.Time) string { return t.Format(time.DateOnly) }

func (r *queries) Visits(ctx context.Context, d time.Time) (Visits, error) {
	return store.One(ctx, r.q, func(row store.Row) (Visits, error) {
		var v Visits
		err := row.Scan(&v.Members, &v.Total, &v.Open)
		return v, err
	}, `
select
	count(distinct member_id)::int,
	count(*)::int,
	count(*) filter (where check_out_time is null)::int
from gym_checkins
where date = $1::text::date`, day(d))
}

func (r *queries) Visitors(ctx context.Context, from, to time.Time) (int, error) {
	return store.Scalar[int](ctx, r.q, `
select count(distinct member_id)::int
from gym_checkins
where date between $1::text::date and $2::text::date`, day(from), day(to))
}

func (r *queries) Revenue(ctx context.Context, lo, hi time.Time) (float64, error) {
	return store.Scalar[float64](ctx, r.q, `
select coalesce(sum(amount), 0)::float8
from payments
where status = 'Completed' and payment_date >= $1 and payment_date < $2`, lo, hi)
}

func (r *queries) NewMembers(ctx context.Context, lo, hi time.Time) (int, error) {
	return store.Scalar[int](ctx, r.q, `
select count(*)::int
from members
where not is_deleted and created_at >= $1 and created_at < $2`, lo, hi)
}

func (r *queries) ActiveMembers(ctx context.Context) (int, error) {
	return store.Scalar[int](ctx, r.q, `select count(*)::int from members where is_active and not is_deleted`)
}

func (r *queries) Expiring(ctx context.Context, from, to time.Time) ([]domain.Expiring, error) {
	return store.Many(ctx, r.q, func(row store.Row) (domain.Expiring, error) {
		var e domain.Expiring
		err := row.Scan(&e.MemberID, &e.Name, &e.Phone, &e.EndDate)
		return e, err
	}, `
select member_id, name, phone, end_date
from members
where is_active and not is_deleted
  and end_date between $1::text::date and $2::text::date
order by end_date, name`, day(from), day(to))
}

func (r *queries) Hours(ctx context.Context, d time.Time, tz string) ([]domain.HourCount, error) {
	return store.Many(ctx, r.q, func(row store.Row) (domain.HourCount, error) {
		var h domain.HourCount
		err := row.Scan(&h.Hour, &h.Count)
		return h, err
	}, `
select extract(hour from check_in_time at time zone $2)::int as hour, count(*)::int
from gym_checkins
where date = $1::text::date
group by 1
order by 1`, day(d), tz)
}
