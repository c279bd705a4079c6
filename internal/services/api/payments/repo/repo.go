// Package repo provides postgres access for payments and the member renewal they trigger
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gymdesk/internal/modkit/repokit"
	perr "gymdesk/internal/platform/errors"
	"gymdesk/internal/platform/store"
	"gymdesk/internal/services/api/payments/domain"
)

// Member is the slice of a member row a payment reads and renews
type Member struct {
	PK        int64
	MemberID  string
	Name      string
	IsActive  bool
	StartDate time.Time
	EndDate   time.Time
}

// Filter narrows List and Count. From and To are instants, To exclusive
type Filter struct {
	MemberID string
	Status   string
	Method   string
	From     *time.Time
	To       *time.Time
}

// Repo is the persistence surface for payments
type Repo interface {
	LockMember(ctx context.Context, memberID string) (Member, error)
	Renew(ctx context.Context, pk int64, start, end time.Time, fee float64) error
	Insert(ctx context.Context, p domain.Payment) (domain.Payment, error)
	Get(ctx context.Context, id string) (domain.Payment, error)
	Lock(ctx context.Context, id string) (domain.Payment, error)
	SetStatus(ctx context.Context, id, status string) (domain.Payment, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]domain.Payment, error)
	Count(ctx context.Context, f Filter) (int, error)
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

const columns = `
	p.id::text, p.member_fk_id, p.stored_member_id, p.stored_member_name,
	p.membership_plan_id, p.stored_plan_label, p.stored_duration_days,
	p.amount::float8, p.payment_method, p.reference_number, p.payment_date,
	p.status, p.processed_by, p.remarks, p.created_at, p.updated_at`

func scanPayment(row store.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID, &p.MemberPK, &p.MemberID, &p.MemberName,
		&p.PlanID, &p.PlanLabel, &p.DurationDays,
		&p.Amount, &p.Method, &p.Reference, &p.PaymentDate,
		&p.Status, &p.ProcessedBy, &p.Remarks, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *queries) LockMember(ctx context.Context, memberID string) (Member, error) {
	return store.One(ctx, r.q, func(row store.Row) (Member, error) {
		var m Member
		err := row.Scan(&m.PK, &m.MemberID, &m.Name, &m.IsActive, &m.StartDate, &m.EndDate)
		return m, err
	}, `
select id, member_id, name, is_active, start_date, end_date
from members
where member_id = $1 and not is_deleted
for update`, memberID)
}

func (r *queries) Renew(ctx context.Context, pk int64, start, end time.Time, fee float64) error {
	tag, err := r.q.Exec(ctx, `
update members
set start_date = $2::text::date, end_date = $3::text::date, membership_fee = $4, is_active = true
where id = $1`, pk, start.Format(time.DateOnly), end.Format(time.DateOnly), fee)
	if err != nil {
		return perr.FromPostgres(err, "renew membership")
	}
	if tag.RowsAffected() == 0 {
		return perr.ErrNotFound
	}
	return nil
}

func (r *queries) Insert(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	out, err := store.One(ctx, r.q, scanPayment, `
insert into payments as p (
	id, member_fk_id, stored_member_id, stored_member_name,
	membership_plan_id, stored_plan_label, stored_duration_days,
	amount, payment_method, reference_number, payment_date,
	status, processed_by, remarks
)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
returning `+columns,
		p.ID, p.MemberPK, p.MemberID, p.MemberName,
		p.PlanID, p.PlanLabel, p.DurationDays,
		p.Amount, p.Method, p.Reference, p.PaymentDate,
		p.Status, p.ProcessedBy, p.Remarks,
	)
	if err != nil {
		return domain.Payment{}, perr.FromPostgres(err, "insert payment")
	}
	return out, nil
}

func (r *queries) Get(ctx context.Context, id string) (domain.Payment, error) {
	return store.One(ctx, r.q, scanPayment, `select `+columns+` from payments p where p.id = $1::uuid`, id)
}

func (r *queries) Lock(ctx context.Context, id string) (domain.Payment, error) {
	return store.One(ctx, r.q, scanPayment, `select `+columns+` from payments p where p.id = $1::uuid for update`, id)
}

func (r *queries) SetStatus(ctx context.Context, id, status string) (domain.Payment, error) {
	return store.One(ctx, r.q, scanPayment, `
update payments as p set status = $2, updated_at = now()
where p.id = $1::uuid
returning `+columns, id, status)
}

func (r *queries) List(ctx context.Context, f Filter, limit, offset int) ([]domain.Payment, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`select ` + columns + ` from payments p where true`)
	where(&sb, f, arg)
	sb.WriteString("\norder by p.payment_date desc, p.created_at desc limit " + arg(limit) + " offset " + arg(offset))

	return store.Many(ctx, r.q, scanPayment, sb.String(), args...)
}

func (r *queries) Count(ctx context.Context, f Filter) (int, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`select count(*)::int from payments p where true`)
	where(&sb, f, arg)

	return store.Scalar[int](ctx, r.q, sb.String(), args...)
}

func where(sb *strings.Builder, f Filter, arg func(any) string) {
	if f.MemberID != "" {
		sb.WriteString("\n  and p.stored_member_id = " + arg(f.MemberID))
	}
	if f.Status != "" {
		sb.WriteString("\n  and p.status = " + arg(f.Status))
	}
	if f.Method != "" {
		sb.WriteString("\n  and p.payment_method = " + arg(f.Method))
	}
	if f.From != nil {
		sb.WriteString("\n  and p.payment_date >= " + arg(*f.From))
	}
	if f.To != nil {
		sb.WriteString("\n  and p.payment_date < " + arg(*f.To))
	}
}
