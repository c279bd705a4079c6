// Package repo provides postgres access for staff accounts and sessions
package repo

import (
	"context"
	"time"

	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/staff/domain"
)

// Repo is the persistence surface for staff and sessions
type Repo interface {
	List(ctx context.Context) ([]domain.Staff, error)
	Get(ctx context.Context, id int64) (domain.Staff, error)
	ByUsername(ctx context.Context, username string) (domain.Staff, error)
	Taken(ctx context.Context, username, email string, exceptID int64) (usernameTaken, emailTaken bool, err error)
	Insert(ctx context.Context, s domain.Staff) (domain.Staff, error)
	Update(ctx context.Context, s domain.Staff) (domain.Staff, error)
	Deactivate(ctx context.Context, id int64) error
	OwnerExists(ctx context.Context) (bool, error)

	CreateSession(ctx context.Context, token string, staffID int64, expires time.Time) error
	ResolveSession(ctx context.Context, token string, now time.Time) (domain.Principal, error)
	RevokeSession(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, staffID int64) (int64, error)
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

const columns = `id, username, name, email, phone, role, password_hash, is_active, created_by, date_joined`

func scanStaff(row store.Row) (domain.Staff, error) {
	var s domain.Staff
	err := row.Scan(&s.ID, &s.Username, &s.Name, &s.Email, &s.Phone, &s.Role,
		&s.PasswordHash, &s.IsActive, &s.CreatedBy, &s.DateJoined)
	return s, err
}

func (r *queries) List(ctx context.Context) ([]domain.Staff, error) {
	return store.Many(ctx, r.q, scanStaff, `
select `+columns+` from staff_users
where role = 'Staff' and is_active
order by date_joined desc, id desc`)
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Staff, error) {
	return store.One(ctx, r.q, scanStaff, `select `+columns+` from staff_users where id = $1 and is_active`, id)
}

func (r *queries) ByUsername(ctx context.Context, username string) (domain.Staff, error) {
	return store.One(ctx, r.q, scanStaff, `select `+columns+` from staff_users where username = $1`, username)
}

func (r *queries) Taken(ctx context.Context, username, email string, exceptID int64) (bool, bool, error) {
	var u, e bool
	err := r.q.QueryRow(ctx, `
select
	exists (select 1 from staff_users where username = $1 and id <> $3),
	exists (select 1 from staff_users where lower(email) = lower($2) and id <> $3)`,
		username, email, exceptID).Scan(&u, &e)
	return u, e, err
}

func (r *queries) Insert(ctx context.Context, s domain.Staff) (domain.Staff, error) {
	out, err := store.One(ctx, r.q, scanStaff, `
insert into staff_users (username, name, email, phone, role, password_hash, created_by)
values ($1, $2, $3, $4, $5, $6, $7)
returning `+columns, s.Username, s.Name, s.Email, s.Phone, s.Role, s.PasswordHash, s.CreatedBy)
	if err != nil {
		return domain.Staff{}, perr.FromPostgres(err, "insert staff")
	}
	return out, nil
}

func (r *queries) Update(ctx context.Context, s domain.Staff) (domain.Staff, error) {
	out, err := store.One(ctx, r.q, scanStaff, `
update staff_users set name = $2, email = $3, phone = $4
where id = $1
returning `+columns, s.ID, s.Name, s.Email, s.Phone)
	if err != nil {
		return domain.Staff{}, perr.FromPostgres(err, "update staff")
	}
	return out, nil
}

func (r *queries) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `update staff_users set is_active = false where id = $1 and is_active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.ErrNotFound
	}
	return nil
}

func (r *queries) OwnerExists(ctx context.Context) (bool, error) {
	return store.Scalar[bool](ctx, r.q, `select exists (select 1 from staff_users where role = 'Owner' and is_active)`)
}

func (r *queries) CreateSession(ctx context.Context, token string, staffID int64, expires time.Time) error {
	_, err := r.q.Exec(ctx,
		`insert into staff_sessions (token, staff_id, expires_at) values ($1::uuid, $2, $3)`,
		token, staffID, expires)
	return err
}

func (r *queries) ResolveSession(ctx context.Context, token string, now time.Time) (domain.Principal, error) {
	return store.One(ctx, r.q, func(row store.Row) (domain.Principal, error) {
		var p domain.Principal
		err := row.Scan(&p.StaffID, &p.Role)
		return p, err
	}, `
select u.id, u.role
from staff_sessions s
join staff_users u on u.id = s.staff_id
where s.token = $1::uuid
  and s.revoked_at is null
  and s.expires_at > $2
  and u.is_active`, token, now)
}

func (r *queries) RevokeSession(ctx context.Context, token string) error {
	_, err := r.q.Exec(ctx,
		`update staff_sessions set revoked_at = now() where token = $1::uuid and revoked_at is null`, token)
	return err
}

func (r *queries) RevokeAll(ctx context.Context, staffID int64) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`update staff_sessions set revoked_at = now() where staff_id = $1 and revoked_at is null`, staffID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
