// Package service turns period buckets into metric series and chart scales
package service

import (
	"context"
	"time"

	"gymdesk/internal/core/membership"
	"gymdesk/internal/core/period"
	"gymdesk/internal/core/scale"
	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	ptime "gymdesk/internal/platform/time"
	"gymdesk/internal/services/api/metrics/domain"
	"gymdesk/internal/services/api/metrics/repo"
)

// Service defines the metrics service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the metrics service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	clock ptime.Clock
	loc   *time.Location
}

// Option tunes a Svc
type Option func(*Svc)

// WithClock pins "now", mostly for tests and the report CLI
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.clock = c } }

// WithLocation sets the gym's local time zone used for every bucket
func WithLocation(loc *time.Location) Option {
	return func(s *Svc) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// New constructs a metrics service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("metrics.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("metrics.Service requires a non nil Repo binder")
	}
	s := &Svc{Repo: binder.Bind(db), binder: binder, db: db, clock: ptime.System(), loc: time.UTC}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog lists metrics and period keywords
func (s *Svc) Catalog() domain.Catalog {
	return domain.Catalog{Metrics: domain.Metrics(), Periods: period.Keywords()}
}

// Chart builds the labelled series for q. Only an unknown metric is an error;
// bad dates fall back to the named period
func (s *Svc) Chart(ctx context.Context, q domain.ChartQuery) (domain.Chart, error) {
	m, ok := domain.ParseMetric(q.Metric)
	if !ok {
		return domain.Chart{}, perr.Validationf("unknown metric %q", q.Metric)
	}

	sel := period.ParseSelector(q.Period, q.DateFrom, q.DateTo)
	opt := period.Options{Coarse: q.Coarse}
	if sel.Kind == period.AllTime {
		first, err := s.Repo.Earliest(ctx, m, s.loc)
		if err != nil {
			return domain.Chart{}, err
		}
		opt.Earliest = first
	}

	buckets := period.Bucketize(sel, s.clock.In(s.loc), opt)

	var (
		labels = period.Labels(buckets)
		data   []float64
		err    error
	)
	if m == domain.PaymentMethods {
		labels, data, err = s.methods(ctx, buckets)
	} else {
		data, err = s.series(ctx, m, buckets)
	}
	if err != nil {
		return domain.Chart{}, err
	}

	if m.Rounded() {
		for i := range data {
			data[i] = scale.Round2(data[i])
		}
	}

	logger.C(ctx).Debug().
		Str("metric", string(m)).
		Str("period", sel.Keyword()).
		Int("buckets", len(buckets)).
		Msg("metrics: chart built")

	return domain.Chart{
		Labels: labels,
		Data:   data,
		Metric: string(m),
		Period: sel.Keyword(),
		Scale:  scale.Estimate(data),
	}, nil
}

// series returns one sample per bucket; placeholders are 0 and never queried
func (s *Svc) series(ctx context.Context, m domain.Metric, buckets []period.Bucket) ([]float64, error) {
	out := make([]float64, len(buckets))
	idx, ws := windows(buckets)
	if len(ws) == 0 {
		return out, nil
	}

	vals, err := s.sample(ctx, m, ws)
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		out[idx[i]] = v
	}
	return out, nil
}

func (s *Svc) sample(ctx context.Context, m domain.Metric, ws []repo.Window) ([]float64, error) {
	switch m {
	case domain.ActiveMembers:
		return s.Repo.ActiveOn(ctx, lastDays(ws))

	case domain.RetentionRate, domain.ChurnRate:
		rows, err := s.Repo.Cohort(ctx, ws)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(rows))
		for i, c := range rows {
			n := c.Kept
			if m == domain.ChurnRate {
				n = c.Lapsed
			}
			out[i] = float64(n) * 100 / float64(max(c.Base, 1))
		}
		return out, nil

	case domain.RevenuePerMember:
		rev, err := s.Repo.Counts(ctx, domain.Revenue, ws)
		if err != nil {
			return nil, err
		}
		active, err := s.Repo.ActiveOn(ctx, lastDays(ws))
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(rev))
		for i := range rev {
			out[i] = rev[i] / max(active[i], 1)
		}
		return out, nil

	default:
		return s.Repo.Counts(ctx, m, ws)
	}
}

// methods charts completed payment counts per method across the whole period
func (s *Svc) methods(ctx context.Context, buckets []period.Bucket) ([]string, []float64, error) {
	all := membership.Methods()
	labels := make([]string, len(all))
	data := make([]float64, len(all))
	for i, m := range all {
		labels[i] = string(m)
	}

	lo, hi := period.Span(buckets)
	if lo.IsZero() {
		return labels, data, nil
	}
	counts, err := s.Repo.MethodCounts(ctx, lo, hi)
	if err != nil {
		return nil, nil, err
	}
	for i, m := range all {
		data[i] = float64(counts[string(m)])
	}
	return labels, data, nil
}

// windows maps non placeholder buckets to repo windows, returning their bucket indexes
func windows(buckets []period.Bucket) ([]int, []repo.Window) {
	idx := make([]int, 0, len(buckets))
	ws := make([]repo.Window, 0, len(buckets))
	for i, b := range buckets {
		if b.IsPlaceholder() {
			continue
		}
		lo, hi := b.Window()
		idx = append(idx, i)
		ws = append(ws, repo.Window{Lo: lo, Hi: hi, First: b.FirstDay(), Last: b.LastDay()})
	}
	return idx, ws
}

func lastDays(ws []repo.Window) []time.Time {
	out := make([]time.Time, len(ws))
	for i, w := range ws {
		out[i] = w.Last
	}
	return out
}
