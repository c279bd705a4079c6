// Package service implements member registration, lookup and search
package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"gymdesk/internal/core/membership"
	"gymdesk/internal/core/normalize"
	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
	str "gymdesk/internal/platform/strings"
	ptime "gymdesk/internal/platform/time"
	"gymdesk/internal/services/api/members/domain"
	"gymdesk/internal/services/api/members/repo"
)

// Service defines the members service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the members service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	clock ptime.Clock
	loc   *time.Location
	newID func() (string, error)
}

// Option tunes a Svc
type Option func(*Svc)

// WithClock pins "now"
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.clock = c } }

// WithLocation sets the gym's local time zone
func WithLocation(loc *time.Location) Option {
	return func(s *Svc) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithIDs replaces the member id generator
func WithIDs(fn func() (string, error)) Option { return func(s *Svc) { s.newID = fn } }

// idAttempts bounds retries when a generated member id collides
const idAttempts = 5

// searchPool is how many candidates are fetched before ranking
const searchPool = 50

// New constructs a members service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts ...Option) *Svc {
	if db == nil {
		panic("members.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("members.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		clock:  ptime.System(),
		loc:    time.UTC,
		newID:  membership.NewMemberID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Svc) today() time.Time { return s.clock.Today(s.loc) }

// Create registers an inactive member dated today with a fresh member id
func (s *Svc) Create(ctx context.Context, staffID string, in domain.CreateInput) (domain.View, error) {
	today := s.today()
	m := domain.Member{
		Name:             normalize.Text(in.Name),
		Email:            cleanEmail(in.Email),
		Phone:            normalize.Text(in.Phone),
		Sex:              in.Sex,
		Address:          normalize.Text(in.Address),
		EmergencyContact: normalize.Text(in.EmergencyContact),
		EmergencyPhone:   normalize.Text(in.EmergencyPhone),
		StartDate:        today,
		EndDate:          today,
		CreatedBy:        staffRef(staffID),
	}
	if m.Name == "" {
		return domain.View{}, perr.Validationf("name is required")
	}

	for attempt := 1; ; attempt++ {
		id, err := s.newID()
		if err != nil {
			return domain.View{}, err
		}
		m.MemberID = id

		out, err := s.Repo.Insert(ctx, m, searchKey(m))
		if err == nil {
			logger.C(ctx).Info().Str("member_id", out.MemberID).Msg("members: registered")
			return domain.ViewOf(out, today), nil
		}
		if !perr.IsDuplicateKey(err) || attempt == idAttempts {
			return domain.View{}, err
		}
		logger.C(ctx).Warn().Str("member_id", id).Int("attempt", attempt).Msg("members: id collision, retrying")
	}
}

// List returns members matching q with totals over the matched set, then applies the status filter
func (s *Svc) List(ctx context.Context, q domain.ListQuery) (domain.ListResult, error) {
	rows, err := s.Repo.List(ctx, tokens(q.Q))
	if err != nil {
		return domain.ListResult{}, err
	}

	today := s.today()
	out := domain.ListResult{Members: make([]domain.View, 0, len(rows))}
	for _, m := range rows {
		v := domain.ViewOf(m, today)
		out.Totals.Add(v.Status)
		if keep(q.Filter, v.Status) {
			out.Members = append(out.Members, v)
		}
	}
	return out, nil
}

// Get returns one member by member id
func (s *Svc) Get(ctx context.Context, memberID string) (domain.View, error) {
	m, err := s.Repo.Get(ctx, memberID)
	if err != nil {
		return domain.View{}, notFound(err, memberID)
	}
	return domain.ViewOf(m, s.today()), nil
}

// Update changes contact fields only
func (s *Svc) Update(ctx context.Context, staffID, memberID string, in domain.UpdateInput) (domain.View, error) {
	if in.Empty() {
		return domain.View{}, perr.Validationf("nothing to update")
	}

	var out domain.Member
	err := store.RunAs(ctx, s.db, staffID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		m, err := r.Get(ctx, memberID)
		if err != nil {
			return notFound(err, memberID)
		}
		if in.Email != nil {
			m.Email = cleanEmail(in.Email)
		}
		setText(&m.Phone, in.Phone)
		setText(&m.Address, in.Address)
		setText(&m.EmergencyContact, in.EmergencyContact)
		setText(&m.EmergencyPhone, in.EmergencyPhone)

		out, err = r.UpdateContact(ctx, m, searchKey(m))
		return err
	})
	if err != nil {
		return domain.View{}, err
	}
	return domain.ViewOf(out, s.today()), nil
}

// Delete soft deletes a member whose subscription is not current
func (s *Svc) Delete(ctx context.Context, staffID, memberID string) error {
	today := s.today()
	return store.RunAs(ctx, s.db, staffID, func(ctx context.Context, q store.RowQuerier) error {
		r := s.binder.Bind(q)
		m, err := r.Get(ctx, memberID)
		if err != nil {
			return notFound(err, memberID)
		}
		if membership.IsCurrent(m.IsActive, m.EndDate, today) {
			return perr.Conflictf("member %s still has an active membership", memberID)
		}
		if err := r.SoftDelete(ctx, memberID); err != nil {
			return notFound(err, memberID)
		}
		logger.C(ctx).Info().Str("member_id", memberID).Msg("members: deleted")
		return nil
	})
}

// Search matches the folded query against name, email and member id.
// Queries shorter than two characters return nothing
func (s *Svc) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Hit, error) {
	key := normalize.Key(q.Q)
	if len([]rune(key)) < domain.MinSearchLen {
		return []domain.Hit{}, nil
	}

	today := s.today()
	rows, err := s.Repo.Search(ctx, strings.Fields(key), today, q.Active, searchPool)
	if err != nil {
		return nil, err
	}

	ranked := rank(key, rows)
	if len(ranked) > domain.SearchLimit {
		ranked = ranked[:domain.SearchLimit]
	}
	out := make([]domain.Hit, len(ranked))
	for i, r := range ranked {
		h := r.Hit
		h.Status = membership.StatusOf(r.IsActive, h.EndDate, today)
		out[i] = h
	}
	return out, nil
}

// rank orders rows by fuzzy distance to key; rows fuzzy matching cannot place keep their order at the end
func rank(key string, rows []repo.SearchRow) []repo.SearchRow {
	targets := make([]string, len(rows))
	for i, r := range rows {
		targets[i] = r.SearchKey
	}
	ranks := fuzzy.RankFindNormalizedFold(key, targets)
	sort.Stable(ranks)

	out := make([]repo.SearchRow, 0, len(rows))
	placed := make([]bool, len(rows))
	for _, r := range ranks {
		out = append(out, rows[r.OriginalIndex])
		placed[r.OriginalIndex] = true
	}
	for i, r := range rows {
		if !placed[i] {
			out = append(out, r)
		}
	}
	return out
}

func keep(filter string, st membership.Status) bool {
	switch filter {
	case "", "all":
		return true
	case "active":
		return st == membership.Active || st == membership.Expiring
	default:
		return string(st) == filter
	}
}

func tokens(q string) []string { return strings.Fields(normalize.Key(q)) }

func searchKey(m domain.Member) string {
	email := ""
	if m.Email != nil {
		email = *m.Email
	}
	return normalize.Keys(m.Name, email, m.MemberID)
}

func cleanEmail(p *string) *string {
	e := str.BlankToNil(p)
	if e != nil {
		*e = strings.ToLower(*e)
	}
	return e
}

func setText(dst *string, v *string) {
	if v != nil {
		*dst = normalize.Text(*v)
	}
}

// staffRef parses the acting staff id for created_by; unknown actors store null
func staffRef(staffID string) *int64 {
	id, err := strconv.ParseInt(staffID, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func notFound(err error, memberID string) error {
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("member %s not found", memberID)
	}
	return err
}
