// Package repo provides postgres access for check-ins
package repo

import (
	"context"
	"time"

	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/checkins/domain"
)

const dayLayout = "2006-01-02"

// Member is the membership state a check-in depends on
type Member struct {
	PK       int64
	MemberID string
	Name     string
	IsActive bool
	EndDate  time.Time
}

// Repo is the persistence surface for check-ins
type Repo interface {
	// LockMember loads a non deleted member and locks its row for the transaction
	LockMember(ctx context.Context, memberID string) (Member, error)
	HasOpen(ctx context.Context, memberPK int64, day time.Time) (bool, error)
	Insert(ctx context.Context, memberPK int64, at, day time.Time) (domain.CheckIn, error)
	// Lock loads a check-in and locks its row for the transaction
	Lock(ctx context.Context, id int64) (domain.CheckIn, error)
	Close(ctx context.Context, id int64, at time.Time) (domain.CheckIn, error)
	OnDay(ctx context.Context, day time.Time, limit int) ([]domain.CheckIn, error)
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

const selectCheckIn = `
select c.id, c.member_id, m.member_id, m.name, c.check_in_time, c.check_out_time, c.date
from gym_checkins c
join members m on m.id = c.member_id`

func scanCheckIn(row store.Row) (domain.CheckIn, error) {
	var c domain.CheckIn
	err := row.Scan(&c.ID, &c.MemberPK, &c.MemberID, &c.MemberName, &c.CheckInTime, &c.CheckOutTime, &c.Date)
	return c.WithDuration(), err
}

func (r *queries) LockMember(ctx context.Context, memberID string) (Member, error) {
	const sql = `
select id, member_id, name, is_active, end_date
from members
where member_id = $1 and not is_deleted
for update`
	return store.One(ctx, r.q, func(row store.Row) (Member, error) {
		var m Member
		err := row.Scan(&m.PK, &m.MemberID, &m.Name, &m.IsActive, &m.EndDate)
		return m, err
	}, sql, memberID)
}

func (r *queries) HasOpen(ctx context.Context, memberPK int64, day time.Time) (bool, error) {
	const sql = `
select exists (
    select 1 from gym_checkins
    where member_id = $1 and date = $2::text::date and check_out_time is null
)`
	return store.Scalar[bool](ctx, r.q, sql, memberPK, day.Format(dayLayout))
}

func (r *queries) Insert(ctx context.Context, memberPK int64, at, day time.Time) (domain.CheckIn, error) {
	const sql = `
with c as (
    insert into gym_checkins (member_id, check_in_time, date)
    values ($1, $2, $3::text::date)
    returning id, member_id, check_in_time, check_out_time, date
)
select c.id, c.member_id, m.member_id, m.name, c.check_in_time, c.check_out_time, c.date
from c join members m on m.id = c.member_id`
	out, err := store.One(ctx, r.q, scanCheckIn, sql, memberPK, at, day.Format(dayLayout))
	if err != nil {
		return domain.CheckIn{}, perr.FromPostgres(err, "insert check-in")
	}
	return out, nil
}

func (r *queries) Lock(ctx context.Context, id int64) (domain.CheckIn, error) {
	return store.One(ctx, r.q, scanCheckIn, selectCheckIn+` where c.id = $1 for update of c`, id)
}

func (r *queries) Close(ctx context.Context, id int64, at time.Time) (domain.CheckIn, error) {
	const sql = `
with c as (
    update gym_checkins set check_out_time = $2
    where id = $1 and check_out_time is null
    returning id, member_id, check_in_time, check_out_time, date
)
select c.id, c.member_id, m.member_id, m.name, c.check_in_time, c.check_out_time, c.date
from c join members m on m.id = c.member_id`
	return store.One(ctx, r.q, scanCheckIn, sql, id, at)
}

func (r *queries) OnDay(ctx context.Context, day time.Time, limit int) ([]domain.CheckIn, error) {
	sql := selectCheckIn + `
where c.date = $1::text::date
order by c.check_in_time desc, c.id desc
limit $2`
	return store.Many(ctx, r.q, scanCheckIn, sql, day.Format(dayLayout), limit)
}
