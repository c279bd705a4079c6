// Package service captures daily active member snapshots
package service

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	ptime "gymdesk/internal/platform/time"
	"gymdesk/internal/services/snapshots/domain"
	"gymdesk/internal/services/snapshots/guardrails"
)

// MaxRange bounds a single CaptureRange call
const MaxRange = 3660

// Config controls where the runner lives in time
type Config struct {
	Clock    ptime.Clock
	Location *time.Location
}

// Service wires TxRunner + Binder into the snapshot operations
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[domain.StorageRepo]
	Lease  guardrails.Lease

	clock ptime.Clock
	loc   *time.Location
}

// New constructs the snapshot service. lease decides how each day is serialized
func New(db repokit.TxRunner, binder repokit.Binder[domain.StorageRepo], lease guardrails.Lease, cfg Config) *Service {
	if db == nil {
		panic("snapshots.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("snapshots.Service requires a non nil Repo binder")
	}
	if lease == nil {
		panic("snapshots.Service requires a lease")
	}
	s := &Service{DB: db, Binder: binder, Lease: lease, clock: cfg.Clock, loc: cfg.Location}
	if s.clock == nil {
		s.clock = ptime.System()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

var _ domain.RunnerPort = (*Service)(nil)

// Days returns today-n+1..today in the gym's time zone, n floored at 1
func (s *Service) Days(n int) (from, to time.Time) {
	if n < 1 {
		n = 1
	}
	to = s.clock.Today(s.loc)
	return to.AddDate(0, 0, -(n - 1)), to
}

// Capture counts and upserts day under the day's lease.
// A held lease returns guardrails.ErrLeaseHeld untouched
func (s *Service) Capture(ctx context.Context, day time.Time) (domain.Captured, error) {
	day = ptime.Midnight(day.In(s.loc))
	l := logger.C(ctx).With().Str("mod", "snapshots").Str("day", day.Format(time.DateOnly)).Logger()

	var out domain.Captured
	err := s.Lease(ctx, day, func(q repokit.Queryer) error {
		r := s.Binder.Bind(q)
		n, err := r.ActiveOn(ctx, day)
		if err != nil {
			return err
		}
		out, err = r.Upsert(ctx, day, n)
		return err
	})
	if err != nil {
		if errors.Is(err, guardrails.ErrLeaseHeld) {
			l.Debug().Msg("snapshots: lease not acquired; clean skip")
			return domain.Captured{}, err
		}
		l.Error().Err(err).Msg("snapshots: capture failed")
		return domain.Captured{}, err
	}
	l.Info().Int("active", out.ActiveCount).Bool("created", out.Created).Msg("snapshots: captured")
	return out, nil
}

// CaptureRange walks from..to oldest first. Days held by another runner are
// skipped; any other failure stops the walk
func (s *Service) CaptureRange(ctx context.Context, from, to time.Time, each func(domain.Captured)) (domain.RangeResult, error) {
	from, to = ptime.Midnight(from.In(s.loc)), ptime.Midnight(to.In(s.loc))
	if to.Before(from) {
		return domain.RangeResult{}, perr.Validationf("snapshot range ends before it starts")
	}
	if ptime.DaysUntil(from, to) >= MaxRange {
		return domain.RangeResult{}, perr.Validationf("snapshot range exceeds %d days", MaxRange)
	}

	var res domain.RangeResult
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c, err := s.Capture(ctx, d)
		if errors.Is(err, guardrails.ErrLeaseHeld) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		if c.Created {
			res.Created++
		} else {
			res.Updated++
		}
		snap := c.Snapshot
		res.Last = &snap
		if each != nil {
			each(c)
		}
	}
	return res, nil
}

// Recent lists the newest n snapshots
func (s *Service) Recent(ctx context.Context, n int) ([]domain.Snapshot, error) {
	return s.Binder.Bind(s.DB).Recent(ctx, n)
}
