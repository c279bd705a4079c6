// Package service assembles the dashboard from concurrent aggregate reads
package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"gymdesk/internal/core/membership"
	"gymdesk/internal/core/money"
	"gymdesk/internal/modkit/repokit"
	ptime "gymdesk/internal/platform/time"
	checkinsdomain "gymdesk/internal/services/api/checkins/domain"
	"gymdesk/internal/services/api/dashboard/domain"
	"gymdesk/internal/services/api/dashboard/repo"
)

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Options are the collaborators of the dashboard service
type Options struct {
	Recent   domain.RecentSource
	Clock    ptime.Clock
	Location *time.Location
}

// Svc implements the dashboard service
type Svc struct {
	Repo repo.Repo

	recent domain.RecentSource
	clock  ptime.Clock
	loc    *time.Location
}

// New constructs a dashboard service
func New(q repokit.Queryer, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if q == nil {
		panic("dashboard.Service requires a non nil Queryer")
	}
	if binder == nil {
		panic("dashboard.Service requires a non nil Repo binder")
	}
	s := &Svc{Repo: binder.Bind(q), recent: opt.Recent, clock: opt.Clock, loc: opt.Location}
	if s.clock == nil {
		s.clock = ptime.System()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

// Stats gathers today's and this month's figures in the gym's time zone
func (s *Svc) Stats(ctx context.Context) (domain.Stats, error) {
	now := s.clock.In(s.loc)
	today := ptime.Midnight(now)
	tomorrow := today.AddDate(0, 0, 1)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)

	out := domain.Stats{AsOf: now}
	var (
		visits repo.Visits
		hours  []domain.HourCount
		recent []checkinsdomain.CheckIn
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		visits, err = s.Repo.Visits(ctx, today)
		return err
	})
	g.Go(func() (err error) {
		out.Today.Revenue, err = s.Repo.Revenue(ctx, today, tomorrow)
		return err
	})
	g.Go(func() (err error) {
		out.Month.CheckIns, err = s.Repo.Visitors(ctx, monthStart, today)
		return err
	})
	g.Go(func() (err error) {
		out.Month.Revenue, err = s.Repo.Revenue(ctx, monthStart, tomorrow)
		return err
	})
	g.Go(func() (err error) {
		out.Month.NewMembers, err = s.Repo.NewMembers(ctx, monthStart, tomorrow)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveMembers, err = s.Repo.ActiveMembers(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.ExpiringSoon, err = s.Repo.Expiring(ctx, today, today.AddDate(0, 0, domain.ExpiringDays))
		return err
	})
	g.Go(func() (err error) {
		hours, err = s.Repo.Hours(ctx, today, s.loc.String())
		return err
	})
	if s.recent != nil {
		g.Go(func() (err error) {
			recent, err = s.recent.Today(ctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Stats{}, err
	}

	out.Today.WalkIns, out.Today.CheckIns, out.Today.InGym = visits.Members, visits.Total, visits.Open
	for i := range out.ExpiringSoon {
		out.ExpiringSoon[i].DaysLeft = membership.DaysLeft(out.ExpiringSoon[i].EndDate, today)
	}
	if out.ExpiringSoon == nil {
		out.ExpiringSoon = []domain.Expiring{}
	}
	out.RecentCheckIns = recent[:min(len(recent), domain.RecentLimit)]
	if out.RecentCheckIns == nil {
		out.RecentCheckIns = []checkinsdomain.CheckIn{}
	}
	out.PeakHours = domain.Peaks(hours)
	out.RevenueDisplay = domain.RevenueDisplay{
		Today: money.Peso(out.Today.Revenue),
		Month: money.Peso(out.Month.Revenue),
	}
	return out, nil
}
