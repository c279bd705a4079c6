// Package service implements member check-in and check-out
package service

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/core/membership"
	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
	ptime "gymdesk/internal/platform/time"
	"gymdesk/internal/services/api/checkins/domain"
	"gymdesk/internal/services/api/checkins/repo"
	membersdomain "gymdesk/internal/services/api/members/domain"
	"gymdesk/internal/services/events"
)

// Service defines the check-ins service contract
type Service interface {
	domain.ServicePort
}

// Options are the collaborators of the check-in service
type Options struct {
	Members  domain.MemberSearch
	Events   events.Sink
	Clock    ptime.Clock
	Location *time.Location
}

// Svc implements the check-ins service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	members domain.MemberSearch
	events  events.Sink
	clock   ptime.Clock
	loc     *time.Location
}

// New constructs a check-ins service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("checkins.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("checkins.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		members: opt.Members,
		events:  opt.Events,
		clock:   opt.Clock,
		loc:     opt.Location,
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	if s.clock == nil {
		s.clock = ptime.System()
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	return s
}

// CheckIn opens a visit for a member with a current subscription and no open visit today
func (s *Svc) CheckIn(ctx context.Context, staffID string, in domain.CheckInInput) (domain.CheckIn, error) {
	now := s.clock.In(s.loc)
	today := ptime.Midnight(now)

	var out domain.CheckIn
	err := store.RunAs(ctx, s.db, staffID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)

		m, err := r.LockMember(ctx, in.MemberID)
		if errors.Is(err, perr.ErrNotFound) {
			return perr.NotFoundf("member %s not found", in.MemberID)
		}
		if err != nil {
			return err
		}
		if !membership.IsCurrent(m.IsActive, m.EndDate, today) {
			return perr.InvalidArgf("member %s does not have an active membership", m.MemberID)
		}

		open, err := r.HasOpen(ctx, m.PK, today)
		if err != nil {
			return err
		}
		if open {
			return perr.Conflictf("%s is already checked in", m.Name)
		}

		out, err = r.Insert(ctx, m.PK, now, today)
		return err
	})
	if err != nil {
		return domain.CheckIn{}, err
	}

	logger.C(ctx).Info().Str("member_id", out.MemberID).Int64("checkin_id", out.ID).Msg("checkins: checked in")
	events.Emit(ctx, s.events, events.Event{Kind: events.CheckIn, MemberID: out.MemberID, OccurredAt: out.CheckInTime})
	return out, nil
}

// CheckOut closes an open visit
func (s *Svc) CheckOut(ctx context.Context, staffID string, id int64) (domain.CheckIn, error) {
	now := s.clock.In(s.loc)

	var out domain.CheckIn
	err := store.RunAs(ctx, s.db, staffID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)

		c, err := r.Lock(ctx, id)
		if errors.Is(err, perr.ErrNotFound) {
			return perr.NotFoundf("check-in %d not found", id)
		}
		if err != nil {
			return err
		}
		if c.CheckOutTime != nil {
			return perr.Conflictf("%s already checked out", c.MemberName)
		}

		out, err = r.Close(ctx, id, now)
		return err
	})
	if err != nil {
		return domain.CheckIn{}, err
	}

	logger.C(ctx).Info().Str("member_id", out.MemberID).Int64("checkin_id", out.ID).Msg("checkins: checked out")
	events.Emit(ctx, s.events, events.Event{Kind: events.CheckOut, MemberID: out.MemberID, OccurredAt: now})
	return out, nil
}

// Today lists today's visits, newest first
func (s *Svc) Today(ctx context.Context) ([]domain.CheckIn, error) {
	return s.Repo.OnDay(ctx, s.clock.Today(s.loc), domain.TodayLimit)
}

// Search finds members who can check in right now
func (s *Svc) Search(ctx context.Context, q domain.SearchQuery) ([]membersdomain.Hit, error) {
	if s.members == nil {
		return nil, perr.Unavailablef("member search is not wired")
	}
	return s.members.Search(ctx, membersdomain.SearchQuery{Q: q.Q, Active: true})
}
