// Package service manages staff accounts, passwords and bearer sessions
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gymdesk/internal/core/normalize"
	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/logger"
	"gymdesk/internal/platform/store"
	ptime "gymdesk/internal/platform/time"
	"gymdesk/internal/services/api/staff/domain"
	"gymdesk/internal/services/api/staff/repo"
)

// Service defines the staff service contract
type Service interface {
	domain.ServicePort
}

// DefaultSessionTTL is how long a login stays valid
const DefaultSessionTTL = 12 * time.Hour

// Options tune the staff service
type Options struct {
	SessionTTL time.Duration
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost
	Cost     int
	Clock    ptime.Clock
	NewToken func() string
}

// Svc implements the staff service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	ttl      time.Duration
	cost     int
	clock    ptime.Clock
	newToken func() string
}

var errBadCredentials = perr.Unauthorizedf("invalid username or password")

// New constructs a staff service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("staff.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("staff.Service requires a non nil Repo binder")
	}
	s := &Svc{
		Repo:     binder.Bind(db),
		binder:   binder,
		db:       db,
		ttl:      opt.SessionTTL,
		cost:     opt.Cost,
		clock:    opt.Clock,
		newToken: opt.NewToken,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.clock == nil {
		s.clock = ptime.System()
	}
	if s.newToken == nil {
		s.newToken = uuid.NewString
	}
	return s
}

// List returns active Staff role accounts, newest first
func (s *Svc) List(ctx context.Context) ([]domain.Staff, error) {
	return s.Repo.List(ctx)
}

// Get returns one active account
func (s *Svc) Get(ctx context.Context, id int64) (domain.Staff, error) {
	st, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Staff{}, notFound(err, id)
	}
	return st, nil
}

// Create adds a Staff role account on behalf of an owner
func (s *Svc) Create(ctx context.Context, ownerID string, in domain.CreateInput) (domain.Staff, error) {
	st := domain.Staff{
		Username:  username(in.Username),
		Name:      normalize.Text(in.Name),
		Email:     email(in.Email),
		Phone:     normalize.Text(in.Phone),
		Role:      domain.RoleStaff,
		IsActive:  true,
		CreatedBy: staffRef(ownerID),
	}
	out, err := s.insert(ctx, st, in.Password)
	if err != nil {
		return domain.Staff{}, err
	}
	logger.C(ctx).Info().Int64("staff_id", out.ID).Str("username", out.Username).Msg("staff: account created")
	return out, nil
}

func (s *Svc) insert(ctx context.Context, st domain.Staff, password string) (domain.Staff, error) {
	if st.Username == "" || st.Name == "" || st.Email == "" {
		return domain.Staff{}, perr.Validationf("username, name and email are required")
	}
	if len([]rune(password)) < domain.MinPasswordLen {
		return domain.Staff{}, perr.Validationf("password must be at least %d characters", domain.MinPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.Staff{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "hash password")
	}
	st.PasswordHash = string(hash)

	var out domain.Staff
	err = s.db.Tx(ctx, func(q store.RowQuerier) error {
		r := s.binder.Bind(q)
		if err := unique(ctx, r, st.Username, st.Email, 0); err != nil {
			return err
		}
		out, err = r.Insert(ctx, st)
		return err
	})
	return out, err
}

// Update changes name, email and phone
func (s *Svc) Update(ctx context.Context, id int64, in domain.UpdateInput) (domain.Staff, error) {
	if in.Empty() {
		return domain.Staff{}, perr.Validationf("nothing to update")
	}
	var out domain.Staff
	err := s.db.Tx(ctx, func(q store.RowQuerier) error {
		r := s.binder.Bind(q)
		st, err := r.Get(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if in.Name != nil {
			if st.Name = normalize.Text(*in.Name); st.Name == "" {
				return perr.Validationf("name cannot be blank")
			}
		}
		if in.Email != nil {
			next := email(*in.Email)
			if !strings.EqualFold(next, st.Email) {
				if err := unique(ctx, r, "", next, st.ID); err != nil {
					return err
				}
			}
			st.Email = next
		}
		if in.Phone != nil {
			st.Phone = normalize.Text(*in.Phone)
		}
		out, err = r.Update(ctx, st)
		return err
	})
	if err != nil {
		return domain.Staff{}, err
	}
	return out, nil
}

// Delete deactivates a Staff account and revokes its sessions
func (s *Svc) Delete(ctx context.Context, id int64) error {
	var revoked int64
	err := s.db.Tx(ctx, func(q store.RowQuerier) error {
		r := s.binder.Bind(q)
		st, err := r.Get(ctx, id)
		if err != nil {
			return notFound(err, id)
		}
		if st.IsOwner() {
			return perr.Forbiddenf("owner accounts cannot be deleted")
		}
		if err := r.Deactivate(ctx, id); err != nil {
			return notFound(err, id)
		}
		revoked, err = r.RevokeAll(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	logger.C(ctx).Info().Int64("staff_id", id).Int64("sessions_revoked", revoked).Msg("staff: account deactivated")
	return nil
}

// Login checks credentials and issues a session token
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	st, err := s.Repo.ByUsername(ctx, username(in.Username))
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Session{}, errBadCredentials
	}
	if err != nil {
		return domain.Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(in.Password)) != nil || !st.IsActive {
		logger.C(ctx).Warn().Str("username", st.Username).Msg("staff: login refused")
		return domain.Session{}, errBadCredentials
	}

	sess := domain.Session{
		Token:     s.newToken(),
		ExpiresAt: s.clock.In(time.UTC).Add(s.ttl),
		Staff:     st,
	}
	if err := s.Repo.CreateSession(ctx, sess.Token, st.ID, sess.ExpiresAt); err != nil {
		return domain.Session{}, err
	}
	logger.C(ctx).Info().Int64("staff_id", st.ID).Str("role", st.Role).Msg("staff: logged in")
	return sess, nil
}

// Logout revokes a session token; unknown tokens are ignored
func (s *Svc) Logout(ctx context.Context, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	return s.Repo.RevokeSession(ctx, token)
}

// Me returns the account behind an authenticated request
func (s *Svc) Me(ctx context.Context, staffID string) (domain.Staff, error) {
	id := staffRef(staffID)
	if id == nil {
		return domain.Staff{}, perr.Unauthorizedf("unknown staff")
	}
	return s.Get(ctx, *id)
}

// Resolve maps a live bearer token to its staff id and role
func (s *Svc) Resolve(ctx context.Context, token string) (domain.Principal, error) {
	if _, err := uuid.Parse(token); err != nil {
		return domain.Principal{}, perr.Unauthorizedf("invalid session token")
	}
	p, err := s.Repo.ResolveSession(ctx, token, s.clock.In(time.UTC))
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Principal{}, perr.Unauthorizedf("session expired or revoked")
	}
	return p, err
}

// EnsureOwner creates the owner account unless an active owner already exists
func (s *Svc) EnsureOwner(ctx context.Context, in domain.OwnerInput) (domain.Staff, bool, error) {
	exists, err := s.Repo.OwnerExists(ctx)
	if err != nil {
		return domain.Staff{}, false, err
	}
	if exists {
		return domain.Staff{}, false, nil
	}

	name := normalize.Text(in.Name)
	if name == "" {
		name = "Owner"
	}
	mail := email(in.Email)
	if mail == "" {
		mail = username(in.Username) + "@localhost"
	}
	out, err := s.insert(ctx, domain.Staff{
		Username: username(in.Username),
		Name:     name,
		Email:    mail,
		Role:     domain.RoleOwner,
		IsActive: true,
	}, in.Password)
	if err != nil {
		return domain.Staff{}, false, err
	}
	logger.C(ctx).Info().Int64("staff_id", out.ID).Str("username", out.Username).Msg("staff: owner created")
	return out, true, nil
}

func unique(ctx context.Context, r repo.Repo, user, mail string, exceptID int64) error {
	u, e, err := r.Taken(ctx, user, mail, exceptID)
	if err != nil {
		return err
	}
	if u {
		return perr.Conflictf("username %s is taken", user)
	}
	if e {
		return perr.Conflictf("email %s is already registered", mail)
	}
	return nil
}

func notFound(err error, id int64) error {
	if errors.Is(err, perr.ErrNotFound) {
		return perr.NotFoundf("staff %d not found", id)
	}
	return err
}

func username(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func staffRef(id string) *int64 {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
