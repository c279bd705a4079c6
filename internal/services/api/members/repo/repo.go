// Package repo provides postgres access for members
package repo

import (
	"context"
	"strings"
	"time"

	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/members/domain"
)

const dayLayout = "2006-01-02"

// Repo is the persistence surface for members
type Repo interface {
	Insert(ctx context.Context, m domain.Member, searchKey string) (domain.Member, error)
	List(ctx context.Context, patterns []string) ([]domain.Member, error)
	Get(ctx context.Context, memberID string) (domain.Member, error)
	UpdateContact(ctx context.Context, m domain.Member, searchKey string) (domain.Member, error)
	SoftDelete(ctx context.Context, memberID string) error
	Search(ctx context.Context, patterns []string, today time.Time, activeOnly bool, limit int) ([]SearchRow, error)
}

// SearchRow is a search candidate before ranking
type SearchRow struct {
	Hit       domain.Hit
	IsActive  bool
	SearchKey string
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

const columns = `id, member_id, name, email, phone, sex, address, emergency_contact, emergency_phone,
    start_date, end_date, membership_fee::float8, is_active, created_by, created_at`

func scanMember(row store.Row) (domain.Member, error) {
	var m domain.Member
	err := row.Scan(
		&m.ID, &m.MemberID, &m.Name, &m.Email, &m.Phone, &m.Sex, &m.Address,
		&m.EmergencyContact, &m.EmergencyPhone,
		&m.StartDate, &m.EndDate, &m.MembershipFee, &m.IsActive, &m.CreatedBy, &m.CreatedAt,
	)
	return m, err
}

func (r *queries) Insert(ctx context.Context, m domain.Member, searchKey string) (domain.Member, error) {
	const sql = `
insert into members (
    member_id, name, email, phone, sex, address, emergency_contact, emergency_phone,
    start_date, end_date, membership_fee, is_active, created_by, search_key
) values ($1, $2, $3, $4, $5, $6, $7, $8, $9::text::date, $10::text::date, $11, $12, $13, $14)
returning ` + columns
	out, err := store.One(ctx, r.q, scanMember, sql,
		m.MemberID, m.Name, m.Email, m.Phone, m.Sex, m.Address, m.EmergencyContact, m.EmergencyPhone,
		m.StartDate.Format(dayLayout), m.EndDate.Format(dayLayout), m.MembershipFee, m.IsActive,
		m.CreatedBy, searchKey,
	)
	if err != nil {
		return domain.Member{}, perr.FromPostgres(err, "insert member")
	}
	return out, nil
}

// List returns non deleted members whose search key contains every pattern, newest first
func (r *queries) List(ctx context.Context, patterns []string) ([]domain.Member, error) {
	sql := `select ` + columns + `
from members
where not is_deleted and search_key like all($1::text[])
order by created_at desc, id desc`
	return store.Many(ctx, r.q, scanMember, sql, likeAll(patterns))
}

func (r *queries) Get(ctx context.Context, memberID string) (domain.Member, error) {
	sql := `select ` + columns + ` from members where member_id = $1 and not is_deleted`
	return store.One(ctx, r.q, scanMember, sql, memberID)
}

func (r *queries) UpdateContact(ctx context.Context, m domain.Member, searchKey string) (domain.Member, error) {
	const sql = `
update members
set email = $2, phone = $3, address = $4, emergency_contact = $5, emergency_phone = $6, search_key = $7
where member_id = $1 and not is_deleted
returning ` + columns
	out, err := store.One(ctx, r.q, scanMember, sql,
		m.MemberID, m.Email, m.Phone, m.Address, m.EmergencyContact, m.EmergencyPhone, searchKey,
	)
	if err != nil {
		return domain.Member{}, perr.FromPostgres(err, "update member")
	}
	return out, nil
}

func (r *queries) SoftDelete(ctx context.Context, memberID string) error {
	tag, err := r.q.Exec(ctx,
		`update members set is_deleted = true, deleted_at = now() where member_id = $1 and not is_deleted`,
		memberID,
	)
	if err != nil {
		return perr.FromPostgres(err, "delete member")
	}
	if tag.RowsAffected() == 0 {
		return perr.ErrNotFound
	}
	return nil
}

func (r *queries) Search(ctx context.Context, patterns []string, today time.Time, activeOnly bool, limit int) ([]SearchRow, error) {
	const sql = `
select m.id, m.member_id, m.name, m.email, m.is_active, m.end_date, m.search_key,
    exists (
        select 1 from gym_checkins c
        where c.member_id = m.id and c.date = $2::text::date and c.check_out_time is null
    )
from members m
where not m.is_deleted
  and m.search_key like all($1::text[])
  and (not $3 or (m.is_active and m.end_date >= $2::text::date))
order by m.name
limit $4`
	return store.Many(ctx, r.q, func(row store.Row) (SearchRow, error) {
		var s SearchRow
		err := row.Scan(
			&s.Hit.ID, &s.Hit.MemberID, &s.Hit.Name, &s.Hit.Email,
			&s.IsActive, &s.Hit.EndDate, &s.SearchKey, &s.Hit.IsCheckedIn,
		)
		return s, err
	}, sql, likeAll(patterns), today.Format(dayLayout), activeOnly, limit)
}

// likeAll turns folded tokens into contains patterns; no tokens matches everything
func likeAll(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{"%"}
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = "%" + escapeLike(t) + "%"
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
