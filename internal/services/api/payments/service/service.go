// Package service records payments and renews the memberships they pay for
package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymdesk/internal/core/membership"
	"gymdesk/internal/core/normalize"
	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
	str "gymdesk/internal/platform/strings"
	ptime "gymdesk/internal/platform/time"
	"gymdesk/internal/services/api/payments/domain"
	"gymdesk/internal/services/api/payments/repo"
	pricingdomain "gymdesk/internal/services/api/pricing/domain"
	"gymdesk/internal/services/events"
)

// Service defines the payments service contract
type Service interface {
	domain.ServicePort
}

// Options are the collaborators of the payments service
type Options struct {
	Plans    domain.PlanLookup
	Events   events.Sink
	Clock    ptime.Clock
	Location *time.Location
	NewID    func() string
}

// Svc implements the payments service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	plans  domain.PlanLookup
	events events.Sink
	clock  ptime.Clock
	loc    *time.Location
	newID  func() string
}

// walkInPlanLabel is stored when a guest pays without choosing a plan
const walkInPlanLabel = "Walk-in"

// New constructs a payments service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("payments.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("payments.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		plans:  opt.Plans,
		events: opt.Events,
		clock:  opt.Clock,
		loc:    opt.Location,
		newID:  opt.NewID,
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
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Create records a payment and, for members, renews their subscription in the same transaction
func (s *Svc) Create(ctx context.Context, staffID string, in domain.CreateInput) (domain.Receipt, error) {
	memberID := strings.ToUpper(strings.TrimSpace(in.MemberID))
	if (memberID == "") == (in.WalkIn == nil) {
		return domain.Receipt{}, perr.Validationf("exactly one of member_id and walk_in is required")
	}
	if !domain.IsMethod(in.Method) {
		return domain.Receipt{}, perr.Validationf("payment_method must be one of %s", strings.Join(domain.Methods(), ", "))
	}
	ref := str.BlankToNil(in.Reference)
	if domain.IsDigital(in.Method) && ref == nil {
		return domain.Receipt{}, perr.Validationf("reference_number is required for %s payments", in.Method)
	}
	if memberID != "" && in.PricingID == 0 {
		return domain.Receipt{}, perr.Validationf("pricing_id is required for member payments")
	}

	p := domain.Payment{
		ID:          s.newID(),
		Method:      in.Method,
		Reference:   ref,
		PaymentDate: s.clock.In(s.loc),
		Status:      domain.StatusCompleted,
		ProcessedBy: staffRef(staffID),
		Remarks:     str.BlankToNil(in.Remarks),
		PlanLabel:   walkInPlanLabel,
	}

	if in.PricingID != 0 {
		plan, err := s.plan(ctx, in.PricingID)
		if err != nil {
			return domain.Receipt{}, err
		}
		p.PlanID = &plan.ID
		p.PlanLabel = plan.DurationLabel
		p.DurationDays = plan.DurationDays
		p.Amount = plan.Price
	}
	if in.Amount != nil {
		p.Amount = math.Round(*in.Amount*100) / 100
	} else if in.PricingID == 0 {
		return domain.Receipt{}, perr.Validationf("amount is required when no plan is chosen")
	}

	var out domain.Receipt
	if in.WalkIn != nil {
		p.MemberID = domain.WalkInMemberID
		p.MemberName = normalize.Text(in.WalkIn.Name)
		if p.MemberName == "" {
			return domain.Receipt{}, perr.Validationf("walk_in.name is required")
		}
		if p.Remarks == nil && in.WalkIn.Sex != "" {
			note := "Walk-in guest, " + in.WalkIn.Sex
			p.Remarks = &note
		}
		saved, err := s.Repo.Insert(ctx, p)
		if err != nil {
			return domain.Receipt{}, err
		}
		out.Payment = saved
	} else {
		today := ptime.Midnight(p.PaymentDate)
		err := store.RunAs(ctx, s.db, staffID, func(ctx context.Context, q store.RowQuerier) error {
			r := s.binder.Bind(q)

			m, err := r.LockMember(ctx, memberID)
			if errors.Is(err, perr.ErrNotFound) {
				return perr.NotFoundf("member %s not found", memberID)
			}
			if err != nil {
				return err
			}
			p.MemberPK = &m.PK
			p.MemberID = m.MemberID
			p.MemberName = m.Name

			saved, err := r.Insert(ctx, p)
			if err != nil {
				return err
			}

			extended := membership.IsCurrent(m.IsActive, m.EndDate, today)
			next := membership.Renew(m.IsActive, m.StartDate, m.EndDate, today, p.DurationDays)
			if err := r.Renew(ctx, m.PK, next.Start, next.End, saved.Amount); err != nil {
				return err
			}
			out = domain.Receipt{
				Payment: saved,
				Membership: &domain.Renewal{
					MemberID:  m.MemberID,
					StartDate: next.Start,
					EndDate:   next.End,
					Extended:  extended,
				},
			}
			return nil
		})
		if err != nil {
			return domain.Receipt{}, err
		}
	}

	logger.C(ctx).Info().
		Str("payment_id", out.Payment.ID).
		Str("member_id", out.Payment.MemberID).
		Float64("amount", out.Payment.Amount).
		Str("method", out.Payment.Method).
		Msg("payments: recorded")
	events.Emit(ctx, s.events, events.Event{
		Kind:       events.Payment,
		MemberID:   out.Payment.MemberID,
		Amount:     out.Payment.Amount,
		Method:     out.Payment.Method,
		OccurredAt: out.Payment.PaymentDate,
	})
	return out, nil
}

func (s *Svc) plan(ctx context.Context, id int64) (pricingdomain.Plan, error) {
	if s.plans == nil {
		return pricingdomain.Plan{}, perr.Unavailablef("pricing is not wired")
	}
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return pricingdomain.Plan{}, err
	}
	if !plan.IsActive {
		return pricingdomain.Plan{}, perr.InvalidArgf("plan %s is no longer offered", plan.DurationLabel)
	}
	return plan, nil
}

// List returns a page of history, newest first
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.Page, error) {
	f, err := s.filter(q)
	if err != nil {
		return domain.Page{}, err
	}
	page := max(q.Page, 1)
	size := q.Size
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	size = min(size, domain.MaxPageSize)

	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return domain.Page{}, err
	}
	items := []domain.Payment{}
	if total > (page-1)*size {
		if items, err = s.Repo.List(ctx, f, size, (page-1)*size); err != nil {
			return domain.Page{}, err
		}
	}
	return domain.Page{Items: items, Total: total, Page: page, Size: size}, nil
}

// filter turns local calendar days into an instant range
func (s *Svc) filter(q domain.ListQuery) (repo.Filter, error) {
	f := repo.Filter{
		MemberID: strings.ToUpper(strings.TrimSpace(q.MemberID)),
		Status:   q.Status,
		Method:   strings.TrimSpace(q.Method),
	}
	if q.DateFrom != "" {
		d, err := time.ParseInLocation(time.DateOnly, q.DateFrom, s.loc)
		if err != nil {
			return repo.Filter{}, perr.Validationf("date_from must be YYYY-MM-DD")
		}
		f.From = &d
	}
	if q.DateTo != "" {
		d, err := time.ParseInLocation(time.DateOnly, q.DateTo, s.loc)
		if err != nil {
			return repo.Filter{}, perr.Validationf("date_to must be YYYY-MM-DD")
		}
		end := d.AddDate(0, 0, 1)
		f.To = &end
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return repo.Filter{}, perr.Validationf("date_from must not be after date_to")
	}
	return f, nil
}

// Get returns one payment
func (s *Svc) Get(ctx context.Context, id string) (domain.Payment, error) {
	if err := checkID(id); err != nil {
		return domain.Payment{}, err
	}
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Payment{}, notFound(err, id)
	}
	return p, nil
}

// Refund marks a completed payment refunded. The membership it paid for is left as is
func (s *Svc) Refund(ctx context.Context, staffID, id string) (domain.Payment, error) {
	if err := checkID(id); err != nil {
		return domain.Payment{}, err
	}
	var out domain.Payment
	err := store.RunAs(ctx, s.db, staffID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		p, err := r.Lock(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if p.Status != domain.StatusCompleted {
			return perr.Conflictf("only completed payments can be refunded, this one is %s", p.Status)
		}
		out, err = r.SetStatus(ctx, id, domain.StatusRefunded)
		return err
	})
	if err != nil {
		return domain.Payment{}, err
	}
	logger.C(ctx).Info().Str("payment_id", id).Str("staff_id", staffID).Msg("payments: refunded")
	return out, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.Validationf("payment id must be a uuid")
	}
	return nil
}

func notFound(err error, id string) error {
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("payment %s not found", id)
	}
	return err
}

func staffRef(id string) *int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
