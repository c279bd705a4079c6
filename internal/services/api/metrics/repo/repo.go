// Package repo provides postgres access for metric series
package repo

import (
	"context"
	"fmt"
	"time"

	"gymdesk/internal/modkit/repokit"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/metrics/domain"
)

const dayLayout = "2006-01-02"

// Window is one bucket as both an instant range [Lo, Hi) and its calendar days
type Window struct {
	Lo, Hi      time.Time
	First, Last time.Time
}

// Repo is the persistence surface for metric series.
// Every series call answers all windows in one statement, index aligned with ws
type Repo interface {
	// Earliest returns the first calendar day with data for m, nil when there is none
	Earliest(ctx context.Context, m domain.Metric, loc *time.Location) (*time.Time, error)

	Counts(ctx context.Context, m domain.Metric, ws []Window) ([]float64, error)
	ActiveOn(ctx context.Context, days []time.Time) ([]float64, error)
	Cohort(ctx context.Context, ws []Window) ([]CohortRow, error)
	MethodCounts(ctx context.Context, lo, hi time.Time) (map[string]int64, error)
}

// CohortRow counts members active on a window's first day and what became of them by its last day
type CohortRow struct {
	Base   int64
	Kept   int64
	Lapsed int64
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

// earliest per metric; tz marks statements that localise a timestamptz with $1
var earliest = map[domain.Metric]struct {
	sql string
	tz  bool
}{
	domain.CheckIns:           {`select ((min(check_in_time) at time zone $1)::date)::text from gym_checkins`, true},
	domain.AvgSessionDuration: {`select ((min(check_in_time) at time zone $1)::date)::text from gym_checkins where check_out_time is not null`, true},
	domain.Revenue:            {`select ((min(payment_date) at time zone $1)::date)::text from payments where status = 'Completed'`, true},
	domain.RevenuePerMember:   {`select ((min(payment_date) at time zone $1)::date)::text from payments where status = 'Completed'`, true},
	domain.PaymentMethods:     {`select ((min(payment_date) at time zone $1)::date)::text from payments where status = 'Completed'`, true},
	domain.NewMembers:         {`select ((min(created_at) at time zone $1)::date)::text from members where not is_deleted`, true},
	domain.ActiveMembers: {`
select least(
    (select min(date) from active_member_snapshots),
    (select min(start_date) from members where not is_deleted and is_active)
)::text`, false},
	domain.RetentionRate: {`select min(start_date)::text from members where not is_deleted and is_active`, false},
	domain.ChurnRate:     {`select min(start_date)::text from members where not is_deleted and is_active`, false},
}

func (r *queries) Earliest(ctx context.Context, m domain.Metric, loc *time.Location) (*time.Time, error) {
	e, ok := earliest[m]
	if !ok {
		return nil, fmt.Errorf("metrics: no earliest query for %q", m)
	}
	var args []any
	if e.tz {
		args = append(args, loc.String())
	}
	var s *string
	if err := r.q.QueryRow(ctx, e.sql, args...).Scan(&s); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	d, err := time.ParseInLocation(dayLayout, *s, loc)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// counts per metric; each joins the fact table against the unnested windows
var counts = map[domain.Metric]string{
	domain.CheckIns: `
select count(c.id)::float8
from unnest($1::timestamptz[], $2::timestamptz[]) with ordinality as w(lo, hi, ord)
left join gym_checkins c on c.check_in_time >= w.lo and c.check_in_time < w.hi
group by w.ord
order by w.ord`,
	domain.Revenue: `
select coalesce(sum(p.amount), 0)::float8
from unnest($1::timestamptz[], $2::timestamptz[]) with ordinality as w(lo, hi, ord)
left join payments p on p.payment_date >= w.lo and p.payment_date < w.hi and p.status = 'Completed'
group by w.ord
order by w.ord`,
	domain.NewMembers: `
select count(m.id)::float8
from unnest($1::timestamptz[], $2::timestamptz[]) with ordinality as w(lo, hi, ord)
left join members m on m.created_at >= w.lo and m.created_at < w.hi and not m.is_deleted
group by w.ord
order by w.ord`,
	domain.AvgSessionDuration: `
select coalesce(avg(extract(epoch from c.check_out_time - c.check_in_time) / 60), 0)::float8
from unnest($1::timestamptz[], $2::timestamptz[]) with ordinality as w(lo, hi, ord)
left join gym_checkins c on c.check_in_time >= w.lo and c.check_in_time < w.hi and c.check_out_time is not null
group by w.ord
order by w.ord`,
}

func (r *queries) Counts(ctx context.Context, m domain.Metric, ws []Window) ([]float64, error) {
	sql, ok := counts[m]
	if !ok {
		return nil, fmt.Errorf("metrics: %q is not a windowed count", m)
	}
	lo := make([]time.Time, len(ws))
	hi := make([]time.Time, len(ws))
	for i, w := range ws {
		lo[i], hi[i] = w.Lo, w.Hi
	}
	vals, err := store.Many(ctx, r.q, scanFloat, sql, lo, hi)
	return aligned(vals, err, len(ws))
}

func (r *queries) ActiveOn(ctx context.Context, days []time.Time) ([]float64, error) {
	const sql = `
select coalesce(s.active_count, (
    select count(*) from members m
    where not m.is_deleted and m.is_active and m.start_date <= w.d and m.end_date >= w.d
))::float8
from unnest($1::text[]::date[]) with ordinality as w(d, ord)
left join active_member_snapshots s on s.date = w.d
order by w.ord`
	vals, err := store.Many(ctx, r.q, scanFloat, sql, dayStrings(days))
	return aligned(vals, err, len(days))
}

func (r *queries) Cohort(ctx context.Context, ws []Window) ([]CohortRow, error) {
	const sql = `
select
    count(m.id),
    count(m.id) filter (where m.end_date >= w.last),
    count(m.id) filter (where m.end_date < w.last)
from unnest($1::text[]::date[], $2::text[]::date[]) with ordinality as w(first, last, ord)
left join members m
    on not m.is_deleted and m.is_active and m.start_date <= w.first and m.end_date >= w.first
group by w.ord
order by w.ord`
	first := make([]time.Time, len(ws))
	last := make([]time.Time, len(ws))
	for i, w := range ws {
		first[i], last[i] = w.First, w.Last
	}
	out, err := store.Many(ctx, r.q, func(row store.Row) (CohortRow, error) {
		var c CohortRow
		err := row.Scan(&c.Base, &c.Kept, &c.Lapsed)
		return c, err
	}, sql, dayStrings(first), dayStrings(last))
	if err != nil {
		return nil, err
	}
	if len(out) != len(ws) {
		return nil, fmt.Errorf("metrics: got %d cohort rows for %d windows", len(out), len(ws))
	}
	return out, nil
}

func (r *queries) MethodCounts(ctx context.Context, lo, hi time.Time) (map[string]int64, error) {
	const sql = `
select payment_method, count(*)
from payments
where status = 'Completed' and payment_date >= $1 and payment_date < $2
group by payment_method`
	type pair struct {
		method string
		n      int64
	}
	rows, err := store.Many(ctx, r.q, func(row store.Row) (pair, error) {
		var p pair
		err := row.Scan(&p.method, &p.n)
		return p, err
	}, sql, lo, hi)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, p := range rows {
		out[p.method] = p.n
	}
	return out, nil
}

func scanFloat(row store.Row) (float64, error) {
	var v float64
	err := row.Scan(&v)
	return v, err
}

func dayStrings(ds []time.Time) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Format(dayLayout)
	}
	return out
}

// aligned checks a series has one sample per window
func aligned(vals []float64, err error, n int) ([]float64, error) {
	if err != nil {
		return nil, err
	}
	if len(vals) != n {
		return nil, fmt.Errorf("metrics: got %d samples for %d windows", len(vals), n)
	}
	return vals, nil
}
